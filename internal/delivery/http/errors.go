package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"exampocket-backend/internal/delivery/http/utils"
	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/repo"
	"exampocket-backend/internal/usecase"
)

// writeError переводит ошибку сценария в HTTP-ответ.
// Всё, что не распознано, считается сбоем хранилища и отдаётся с его сообщением.
func writeError(c echo.Context, err error) error {
	var validationErr *entity.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return utils.WriteError(c, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, repo.ErrMaterialNotFound):
		return utils.WriteError(c, http.StatusNotFound, "Material not found")
	case errors.Is(err, repo.ErrObjectExists):
		return utils.WriteError(c, http.StatusConflict, "A file already exists at this path")
	case errors.Is(err, usecase.ErrCatalogUnavailable):
		c.Logger().Errorf("Ошибка запроса каталога: %v", err)
		return utils.WriteError(c, http.StatusBadGateway, "Failed to load materials")
	default:
		c.Logger().Errorf("Ошибка хранилища: %v", err)
		return utils.WriteError(c, http.StatusBadGateway, err.Error())
	}
}
