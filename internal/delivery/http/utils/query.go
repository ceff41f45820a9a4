package utils

import (
	"github.com/labstack/echo/v4"

	"exampocket-backend/internal/entity"
)

// ReadCatalogFilter разбирает фильтры страницы каталога из адресной строки
func ReadCatalogFilter(c echo.Context, materialType entity.MaterialType) (entity.CatalogFilter, error) {
	return entity.ParseCatalogFilter(materialType, c.QueryParams())
}
