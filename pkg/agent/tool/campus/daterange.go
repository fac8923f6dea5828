package campus

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/gollem"

	"github.com/duke-colab/bluebook/pkg/agent/tool"
)

// DateRange is a resolved natural-language time expression. Both bounds
// are inclusive calendar dates.
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

var nDaysPattern = regexp.MustCompile(`(\d+)\s*days?`)

// parseDateRange resolves expressions like "tomorrow", "this weekend" or
// "next 3 days" against the given day. Weeks start on Monday and a
// weekend is Saturday and Sunday. Longer phrases are matched before
// their substrings so "next weekend" never resolves as "next week".
// Unrecognized expressions fall back to today.
func parseDateRange(expr string, today time.Time) DateRange {
	expr = strings.ToLower(expr)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	w := pyWeekday(today)

	start, end := today, today
	switch {
	case strings.Contains(expr, "today"):
	case strings.Contains(expr, "tomorrow"):
		start = today.AddDate(0, 0, 1)
		end = start
	case strings.Contains(expr, "next weekend"):
		ds := (5 - w + 7) % 7
		if ds == 0 {
			ds = 7
		}
		start = today.AddDate(0, 0, ds+7)
		end = start.AddDate(0, 0, 1)
	case strings.Contains(expr, "weekend"):
		// On a Sunday this resolves to the coming Saturday and Sunday.
		ds := (5 - w + 7) % 7
		start = today.AddDate(0, 0, ds)
		end = start.AddDate(0, 0, 1)
	case strings.Contains(expr, "next week"):
		dm := (7 - w) % 7
		if dm == 0 {
			dm = 7
		}
		start = today.AddDate(0, 0, dm)
		end = start.AddDate(0, 0, 6)
	case strings.Contains(expr, "this week"):
		end = today.AddDate(0, 0, 6-w)
	case strings.Contains(expr, "next month"):
		start = time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
		end = start.AddDate(0, 1, -1)
	case strings.Contains(expr, "this month"):
		end = time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location()).AddDate(0, 0, -1)
	default:
		if m := nDaysPattern.FindStringSubmatch(expr); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				end = today.AddDate(0, 0, n)
			}
		}
	}

	return DateRange{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}
}

// pyWeekday maps a date to the Monday=0..Sunday=6 convention the range
// arithmetic is written for.
func pyWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

type parseDateRangeTool struct {
	clock func() time.Time
}

func (x *parseDateRangeTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "campus__parse_date_range",
		Description: "Convert a natural language time expression (e.g. 'today', 'tomorrow', 'this weekend', 'next week', 'next 3 days') into a start_date and end_date in YYYY-MM-DD format. Use this before querying events when the user gives a relative date.",
		Parameters: map[string]*gollem.Parameter{
			"time_expression": {
				Type:        gollem.TypeString,
				Description: "Natural language time expression to resolve",
				Required:    true,
			},
		},
	}
}

func (x *parseDateRangeTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	expr, err := requiredString(args, "time_expression")
	if err != nil {
		return nil, err
	}

	tool.Update(ctx, "Resolving date range for '"+expr+"'...")

	return resultToMap(parseDateRange(expr, x.clock()))
}
