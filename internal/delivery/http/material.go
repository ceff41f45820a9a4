package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"exampocket-backend/internal/usecase"
)

type Material struct {
	materialUseCase usecase.Material
}

func NewMaterial(materialUseCase usecase.Material) *Material {
	return &Material{materialUseCase: materialUseCase}
}

func (h *Material) Configure(server *echo.Group) {
	server.GET("/:id", h.GetMaterial)
	server.GET("/:id/download", h.Download)
}

func (h *Material) GetMaterial(c echo.Context) error {
	material, err := h.materialUseCase.GetMaterial(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"material": material,
	})
}

// Download увеличивает счётчик скачиваний и перенаправляет на файл
func (h *Material) Download(c echo.Context) error {
	material, err := h.materialUseCase.RegisterDownload(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Redirect(http.StatusFound, material.FileURL)
}
