package repo

import (
	"context"

	"exampocket-backend/internal/entity"
)

type MaterialEvent interface {
	PublishMaterialEvent(ctx context.Context, event *entity.MaterialEvent) error
	SubscribeMaterialEvents(ctx context.Context, groupID string) (<-chan *entity.MaterialEvent, error)
	Close() error
}

// NopMaterialEvent используется, когда брокеры не настроены
type NopMaterialEvent struct{}

func (NopMaterialEvent) PublishMaterialEvent(context.Context, *entity.MaterialEvent) error {
	return nil
}

func (NopMaterialEvent) SubscribeMaterialEvents(ctx context.Context, _ string) (<-chan *entity.MaterialEvent, error) {
	ch := make(chan *entity.MaterialEvent)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (NopMaterialEvent) Close() error {
	return nil
}
