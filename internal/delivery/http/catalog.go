package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"exampocket-backend/internal/delivery/http/utils"
	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/usecase"
)

type Catalog struct {
	catalogUseCase usecase.Catalog
}

func NewCatalog(catalogUseCase usecase.Catalog) *Catalog {
	return &Catalog{catalogUseCase: catalogUseCase}
}

func (h *Catalog) Configure(server *echo.Group) {
	server.GET("/notes", h.ListNotes)
	server.GET("/pyqs", h.ListPYQs)
	server.GET("/universities", h.Universities)
}

func (h *Catalog) ListNotes(c echo.Context) error {
	return h.list(c, entity.MaterialTypeNotes)
}

func (h *Catalog) ListPYQs(c echo.Context) error {
	return h.list(c, entity.MaterialTypePYQ)
}

func (h *Catalog) list(c echo.Context, materialType entity.MaterialType) error {
	filter, err := utils.ReadCatalogFilter(c, materialType)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.catalogUseCase.List(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Catalog) Universities(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"universities": entity.Universities,
		"semesters":    []int{1, 2, 3, 4, 5, 6, 7, 8},
	})
}
