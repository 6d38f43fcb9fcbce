package handler

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
)

const MsgOrderSuccessful = "Your order was successful!"

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) PaymentPage(c echo.Context) error {
	page, err := h.paymentService.PaymentPage(c.Request().Context(), middleware.UserID(c), c.Param("option"))
	if err != nil {
		return withRedirect(err, checkoutPath)
	}

	return c.JSON(http.StatusOK, dto.Response{Level: dto.LevelInfo, Data: page})
}

func (h *PaymentHandler) Pay(c echo.Context) error {
	var form dto.PaymentForm
	if err := c.Bind(&form); err != nil {
		return err
	}

	res, err := h.paymentService.Pay(c.Request().Context(), middleware.UserID(c), c.Param("option"), &form)
	if err != nil {
		return withRedirect(err, checkoutPath)
	}

	return c.JSON(http.StatusOK, dto.Response{
		Level:    dto.LevelSuccess,
		Message:  MsgOrderSuccessful,
		Redirect: "/",
		Data:     res,
	})
}
