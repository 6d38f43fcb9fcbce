package handler

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
)

const refundPath = "/request-refund/"

type RefundHandler struct {
	refundService service.RefundService
}

func NewRefundHandler(refundService service.RefundService) *RefundHandler {
	return &RefundHandler{
		refundService: refundService,
	}
}

// RefundForm describes the fields a refund request takes.
func (h *RefundHandler) RefundForm(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.Response{Level: dto.LevelInfo, Data: dto.RefundForm{}})
}

func (h *RefundHandler) RequestRefund(c echo.Context) error {
	var form dto.RefundForm
	if err := c.Bind(&form); err != nil {
		return err
	}

	msg, err := h.refundService.RequestRefund(c.Request().Context(), &form)
	if err != nil {
		return withRedirect(err, refundPath)
	}

	return c.JSON(http.StatusOK, dto.Response{Level: dto.LevelInfo, Message: msg, Redirect: refundPath})
}
