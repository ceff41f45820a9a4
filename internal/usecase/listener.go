package usecase

import (
	"context"

	"exampocket-backend/internal/entity"
)

// MaterialEventListener читает события материалов из брокера и ведёт их учёт
type MaterialEventListener interface {
	// Start блокируется до отмены ctx или закрытия потока событий
	Start(ctx context.Context) error
	Totals() map[entity.MaterialEventType]int64
}
