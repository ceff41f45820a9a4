package usecase

import (
	"context"
	"errors"

	"exampocket-backend/internal/entity"
)

type Catalog interface {
	// List возвращает материалы страницы каталога. Пустой результат - не ошибка.
	List(ctx context.Context, filter entity.CatalogFilter) (*entity.CatalogPage, error)
}

// ErrCatalogUnavailable отличает сбой запроса от пустого результата
var ErrCatalogUnavailable = errors.New("catalog is temporarily unavailable")
