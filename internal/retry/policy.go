// Package retry содержит политику повторов для исходящих вызовов:
// фиксированное число попыток и постоянная задержка между ними.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted возвращается (в обертке ExhaustedError), когда все попытки израсходованы.
var ErrExhausted = errors.New("retry attempts exhausted")

// Policy описывает, сколько раз и с какой паузой повторять операцию.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	// Retryable решает, стоит ли повторять после ошибки. nil - повторять всегда.
	Retryable func(err error) bool
	// OnRetry вызывается перед ожиданием очередной попытки.
	OnRetry func(attempt int, err error)
}

// Fixed возвращает политику с постоянной задержкой, повторяющую любые ошибки.
func Fixed(maxAttempts int, delay time.Duration) Policy {
	return Policy{MaxAttempts: maxAttempts, Delay: delay}
}

// ExhaustedError хранит последнюю ошибку после исчерпания попыток.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts: %v", ErrExhausted.Error(), e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() []error {
	return []error{ErrExhausted, e.Last}
}

// Do выполняет op до MaxAttempts раз. После последней попытки пауза не делается.
// Отмена ctx прерывает цикл и возвращается как есть.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context, attempt int) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op(ctx, attempt)
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		lastErr = err

		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
		if err := wait(ctx, p.Delay); err != nil {
			return err
		}
	}

	return &ExhaustedError{Attempts: maxAttempts, Last: lastErr}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
