package campus

import (
	"context"
	"fmt"

	"github.com/m-mizutani/gollem"

	"github.com/duke-colab/bluebook/pkg/agent/tool"
	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/duke-colab/bluebook/pkg/usecase"
)

type simplifiedEventsTool struct {
	calendar *usecase.CalendarUseCase
}

func (x *simplifiedEventsTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "campus__get_simplified_events",
		Description: "Get campus events within a date range as compact summaries (local id, title, date, time, location, groups, categories). Use campus__get_events_by_local_ids afterwards for full detail on specific events.",
		Parameters: map[string]*gollem.Parameter{
			"start_date": {
				Type:        gollem.TypeString,
				Description: "First day of the range in YYYY-MM-DD format",
				Required:    true,
			},
			"end_date": {
				Type:        gollem.TypeString,
				Description: "Last day of the range in YYYY-MM-DD format (inclusive)",
				Required:    true,
			},
		},
	}
}

func (x *simplifiedEventsTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	start, err := parseDateArg(args, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := parseDateArg(args, "end_date")
	if err != nil {
		return nil, err
	}

	tool.Update(ctx, fmt.Sprintf("Getting events from %s to %s...", start.Format("2006-01-02"), end.Format("2006-01-02")))

	result, err := x.calendar.SimplifiedEvents(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return resultToMap(result)
}

type eventsByLocalIDsTool struct {
	calendar *usecase.CalendarUseCase
}

func (x *eventsByLocalIDsTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "campus__get_events_by_local_ids",
		Description: "Get full event records (description, contact, series, sponsor, link) for local ids returned by campus__get_simplified_events. Unknown ids are skipped.",
		Parameters: map[string]*gollem.Parameter{
			"local_ids": {
				Type:        gollem.TypeArray,
				Description: "Local ids of the events to fetch",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeInteger,
				},
			},
		},
	}
}

func (x *eventsByLocalIDsTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	ids, err := localIDsFromArgs(args, "local_ids")
	if err != nil {
		return nil, err
	}

	tool.Update(ctx, fmt.Sprintf("Fetching %d events...", len(ids)))

	result, err := x.calendar.EventsByLocalIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return resultToMap(result)
}

// localIDsFromArgs reads a required integer array argument. LLM arguments
// arrive as JSON numbers.
func localIDsFromArgs(args map[string]any, key string) ([]types.LocalID, error) {
	raw, ok := args[key].([]any)
	if !ok {
		return nil, fmt.Errorf("%s is required", key)
	}
	ids := make([]types.LocalID, 0, len(raw))
	for _, v := range raw {
		switch n := v.(type) {
		case int:
			ids = append(ids, types.LocalID(n))
		case int64:
			ids = append(ids, types.LocalID(n))
		case float64:
			ids = append(ids, types.LocalID(n))
		default:
			return nil, fmt.Errorf("%s must contain integers, got %T", key, v)
		}
	}
	return ids, nil
}

type eventFiltersTool struct {
	calendar *usecase.CalendarUseCase
}

func (x *eventFiltersTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "campus__get_event_filters",
		Description: "List the sponsor groups and categories of events within a date range, with the local ids of the events under each. Useful for narrowing a broad question before fetching events.",
		Parameters: map[string]*gollem.Parameter{
			"start_date": {
				Type:        gollem.TypeString,
				Description: "First day of the range in YYYY-MM-DD format",
				Required:    true,
			},
			"end_date": {
				Type:        gollem.TypeString,
				Description: "Last day of the range in YYYY-MM-DD format (inclusive)",
				Required:    true,
			},
		},
	}
}

func (x *eventFiltersTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	start, err := parseDateArg(args, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := parseDateArg(args, "end_date")
	if err != nil {
		return nil, err
	}

	tool.Update(ctx, fmt.Sprintf("Listing event filters from %s to %s...", start.Format("2006-01-02"), end.Format("2006-01-02")))

	result, err := x.calendar.FiltersWithIDs(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return resultToMap(result)
}
