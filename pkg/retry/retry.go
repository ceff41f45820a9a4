package retry

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
)

const (
	maxRetries        = 4
	retryMultiplier   = 2
	retryInitialDelay = time.Millisecond * 100
	// При maxRetries = 4, retryMultiplier = 2, retryInitialDelay = 100ms:
	// 0-ая попытка: 0ms
	// 1-ая попытка: 100ms
	// 2-ая попытка: 200ms
	// 3-я попытка: 400ms
	// 4-ая попытка: 800ms, потом завершение
)

// Do выполняет идемпотентную операцию с экспоненциальной задержкой между попытками.
// Возвращает nil, если операция успешна, или последнюю ошибку, если все попытки завершились неудачей
// либо контекст был отменён.
func Do(ctx context.Context, operation func() error) error {
	return do(ctx, maxRetries, retryInitialDelay, operation)
}

func do(ctx context.Context, retries int, initialDelay time.Duration, operation func() error) error {
	delay := initialDelay
	for attempt := 0; ; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		if attempt >= retries {
			return err
		}
		log.Warnf("error during retry %d: %v", attempt, err)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
		delay *= retryMultiplier
	}
}
