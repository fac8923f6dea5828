package tool

import "context"

// UpdateFunc receives progress messages emitted by tools while they run.
type UpdateFunc func(ctx context.Context, message string)

type updateKey struct{}

// WithUpdate installs fn as the progress sink for tools run under ctx.
func WithUpdate(ctx context.Context, fn UpdateFunc) context.Context {
	if fn == nil {
		return ctx
	}
	return context.WithValue(ctx, updateKey{}, fn)
}

// Update reports tool progress to the sink installed with WithUpdate.
// Without a sink the message is dropped.
func Update(ctx context.Context, message string) {
	if fn, ok := ctx.Value(updateKey{}).(UpdateFunc); ok {
		fn(ctx, message)
	}
}
