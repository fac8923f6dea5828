package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/duke-colab/bluebook/pkg/utils/logging"
)

// Dispatch runs handler on its own goroutine, detached from the caller's
// context lifetime but keeping its logger. Errors and panics are logged;
// the caller never hears back.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := context.Background()
	if logger := logging.From(ctx); logger != nil {
		bgCtx = logging.With(bgCtx, logger)
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
