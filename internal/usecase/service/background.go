package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/repo"
)

const backgroundTimeout = 10 * time.Second

// runner запускает фоновую работу. В тестах подменяется синхронным вызовом.
type runner func(func())

func goRunner(f func()) { go f() }

// detach отвязывает фоновую работу от запроса: отмена запроса её не прерывает
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), backgroundTimeout)
}

// publishEvent отправляет событие без ожидания; ошибка только логируется
func publishEvent(ctx context.Context, run runner, events repo.MaterialEvent, eventType entity.MaterialEventType, material *entity.Material) {
	event := entity.NewMaterialEvent(eventType, material, uuid.NewString(), time.Now().UTC())
	run(func() {
		ctx, cancel := detach(ctx)
		defer cancel()
		if err := events.PublishMaterialEvent(ctx, event); err != nil {
			log.Errorf("не удалось отправить событие %s для материала %s: %v", eventType, material.ID, err)
		}
	})
}
