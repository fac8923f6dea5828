package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/duke-colab/bluebook/pkg/utils/logging"
)

// Close closes an io.Closer, logging instead of returning the error.
// Meant for defer sites where the error has nowhere to go. Nil closers
// are ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// Write writes data to w, logging instead of returning the error. Used
// for response bodies where the connection may already be gone. Nil
// writers are ignored.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("Failed to write", slog.Any("error", err))
	}
}
