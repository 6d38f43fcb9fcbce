package handler

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
)

const checkoutPath = "/checkout/"

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	page, err := h.checkoutService.Checkout(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return withRedirect(err, "/")
	}

	return c.JSON(http.StatusOK, dto.Response{Level: dto.LevelInfo, Data: page})
}

func (h *CheckoutHandler) SubmitAddresses(c echo.Context) error {
	var form dto.CheckoutForm
	if err := c.Bind(&form); err != nil {
		return err
	}

	res, err := h.checkoutService.SubmitAddresses(c.Request().Context(), middleware.UserID(c), &form)
	if err != nil {
		if service.IsKind(err, service.KindNotFound) {
			return withRedirect(err, "/")
		}
		return withRedirect(err, checkoutPath)
	}

	return c.JSON(http.StatusOK, dto.Response{
		Level:    dto.LevelSuccess,
		Redirect: "/payment/" + res.PaymentOption + "/",
		Data:     res,
	})
}

func (h *CheckoutHandler) AddCoupon(c echo.Context) error {
	var form dto.CouponForm
	if err := c.Bind(&form); err != nil {
		return err
	}

	msg, err := h.checkoutService.AddCoupon(c.Request().Context(), middleware.UserID(c), &form)
	if err != nil {
		return withRedirect(err, checkoutPath)
	}

	return c.JSON(http.StatusOK, dto.Response{Level: dto.LevelSuccess, Message: msg, Redirect: checkoutPath})
}
