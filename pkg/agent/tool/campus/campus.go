package campus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/duke-colab/bluebook/pkg/usecase"
)

// New builds the campus data tools for the agent use case: date-range
// parsing, calendar queries, directory lookups and scholar lookups. The
// clock feeds the date-range parser; pass nil for wall-clock time.
//
// Resolver results that carry an error field are returned to the model as
// ordinary payloads, not tool failures, so the model can read the error
// and adjust its plan.
func New(calendarUC *usecase.CalendarUseCase, directoryUC *usecase.DirectoryUseCase, scholarsUC *usecase.ScholarsUseCase, clock func() time.Time) []gollem.Tool {
	if clock == nil {
		clock = time.Now
	}
	return []gollem.Tool{
		&parseDateRangeTool{clock: clock},
		&simplifiedEventsTool{calendar: calendarUC},
		&eventsByLocalIDsTool{calendar: calendarUC},
		&eventFiltersTool{calendar: calendarUC},
		&searchDirectoryTool{directory: directoryUC},
		&personDetailsTool{directory: directoryUC},
		&scholarPublicationsTool{scholars: scholarsUC},
		&scholarGrantsTool{scholars: scholarsUC},
		&scholarDetailsTool{scholars: scholarsUC},
	}
}

// resultToMap flattens a result payload into the map shape tools return,
// going through JSON so field names match the HTTP responses exactly.
func resultToMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode tool result")
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, goerr.Wrap(err, "failed to decode tool result")
	}
	return m, nil
}

// requiredString reads a required string argument
func requiredString(args map[string]any, key string) (string, error) {
	s, _ := args[key].(string)
	if s == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}

// optionalCount reads an optional integer argument, falling back to the
// resolver default. LLM arguments arrive as JSON numbers.
func optionalCount(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return usecase.DefaultScholarCount, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, v)
	}
}

// parseDateArg reads a required YYYY-MM-DD date argument
func parseDateArg(args map[string]any, key string) (time.Time, error) {
	raw, err := requiredString(args, key)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a YYYY-MM-DD date, got %q", key, raw)
	}
	return d, nil
}
