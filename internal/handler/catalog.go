package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) Home(c echo.Context) error {
	page := 1
	if p := c.QueryParam("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "page must be a number")
		}
		page = n
	}

	items, err := h.catalogService.ListItems(c.Request().Context(), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Response{Level: dto.LevelInfo, Data: items})
}

func (h *CatalogHandler) Product(c echo.Context) error {
	item, err := h.catalogService.GetItem(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return withRedirect(err, "/")
	}

	return c.JSON(http.StatusOK, dto.Response{Level: dto.LevelInfo, Data: item})
}
