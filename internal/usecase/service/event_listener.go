package service

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/labstack/gommon/log"

	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/repo"
	"exampocket-backend/internal/usecase"
)

type MaterialEventListener struct {
	events         repo.MaterialEvent
	groupID        string
	reportInterval time.Duration

	mu     sync.Mutex
	totals map[entity.MaterialEventType]int64
}

func NewMaterialEventListener(events repo.MaterialEvent, groupID string, reportInterval time.Duration) usecase.MaterialEventListener {
	return &MaterialEventListener{
		events:         events,
		groupID:        groupID,
		reportInterval: reportInterval,
		totals:         map[entity.MaterialEventType]int64{},
	}
}

func (l *MaterialEventListener) Start(ctx context.Context) error {
	events, err := l.events.SubscribeMaterialEvents(ctx, l.groupID)
	if err != nil {
		return fmt.Errorf("subscribe material events: %w", err)
	}

	ticker := time.NewTicker(l.reportInterval)
	defer ticker.Stop()

	log.Infof("Запущен слушатель событий материалов: %s", l.groupID)
	for {
		select {
		case <-ctx.Done():
			log.Infof("Остановка слушателя событий материалов: %s", l.groupID)
			return nil
		case event, ok := <-events:
			if !ok {
				log.Infof("Поток событий материалов закрыт: %s", l.groupID)
				return nil
			}
			l.record(event)
		case <-ticker.C:
			log.Infof("События материалов с момента запуска: %v", l.Totals())
		}
	}
}

func (l *MaterialEventListener) record(event *entity.MaterialEvent) {
	l.mu.Lock()
	l.totals[event.Type]++
	l.mu.Unlock()
	log.Infof("Материал %s (%s, %s): %s в %s",
		event.MaterialID, event.University, event.MaterialType, event.Type, event.OccurredAt.Format(time.RFC3339))
}

func (l *MaterialEventListener) Totals() map[entity.MaterialEventType]int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return maps.Clone(l.totals)
}
