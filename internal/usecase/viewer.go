package usecase

import (
	"context"

	"exampocket-backend/internal/entity"
)

type Viewer interface {
	// Open загружает материал для просмотра. Счётчик просмотров увеличивается ровно один раз на открытие.
	Open(ctx context.Context, id string) (*entity.ViewerSession, error)
	// Apply применяет действие пользователя к состоянию просмотрщика. Счётчики не трогает.
	Apply(state entity.ViewerState, action entity.ViewerAction, page int) (entity.ViewerState, error)
}
