package interfaces

import (
	"context"

	"github.com/duke-colab/bluebook/pkg/domain/model"
)

// CalendarFeed fetches upcoming events from the public calendar feed
type CalendarFeed interface {
	Fetch(ctx context.Context, lookaheadDays int) ([]*model.Event, error)
}
