package handler

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
)

const orderSummaryPath = "/order-summary/"

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func productPath(slug string) string {
	return "/product/" + slug
}

// AddToCart adds the item and keeps the buyer on the product page.
func (h *CartHandler) AddToCart(c echo.Context) error {
	return h.add(c, productPath(c.Param("slug")))
}

// AddItemToCart adds one more unit from the order summary and returns there.
func (h *CartHandler) AddItemToCart(c echo.Context) error {
	return h.add(c, orderSummaryPath)
}

func (h *CartHandler) add(c echo.Context, next string) error {
	slug := c.Param("slug")

	msg, err := h.cartService.AddItem(c.Request().Context(), middleware.UserID(c), slug)
	if err != nil {
		return withRedirect(err, "/")
	}

	return c.JSON(http.StatusOK, dto.Response{Level: dto.LevelInfo, Message: msg, Redirect: next})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	return h.remove(c, service.RemoveLine, productPath(c.Param("slug")))
}

func (h *CartHandler) RemoveSingleItem(c echo.Context) error {
	return h.remove(c, service.RemoveOne, orderSummaryPath)
}

func (h *CartHandler) RemoveAtCheckout(c echo.Context) error {
	return h.remove(c, service.RemoveLine, orderSummaryPath)
}

func (h *CartHandler) remove(c echo.Context, mode service.RemoveMode, next string) error {
	slug := c.Param("slug")

	msg, err := h.cartService.RemoveItem(c.Request().Context(), middleware.UserID(c), slug, mode)
	if err != nil {
		return withRedirect(err, next)
	}

	return c.JSON(http.StatusOK, dto.Response{Level: dto.LevelInfo, Message: msg, Redirect: next})
}

func (h *CartHandler) OrderSummary(c echo.Context) error {
	summary, err := h.cartService.Summary(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return withRedirect(err, "/")
	}

	return c.JSON(http.StatusOK, dto.Response{Level: dto.LevelInfo, Data: summary})
}
