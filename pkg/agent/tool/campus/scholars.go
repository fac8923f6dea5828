package campus

import (
	"context"
	"fmt"

	"github.com/m-mizutani/gollem"

	"github.com/duke-colab/bluebook/pkg/agent/tool"
	"github.com/duke-colab/bluebook/pkg/usecase"
)

type scholarPublicationsTool struct {
	scholars *usecase.ScholarsUseCase
}

func (x *scholarPublicationsTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "campus__get_scholar_publications",
		Description: "Get recent publications for a faculty member, identified by DUID or by name. A name is resolved through the directory first; the result reports how it was resolved. An error field in the result means the lookup failed.",
		Parameters: map[string]*gollem.Parameter{
			"duid_or_query": {
				Type:        gollem.TypeString,
				Description: "Numeric DUID or a person's name",
				Required:    true,
			},
			"count": {
				Type:        gollem.TypeInteger,
				Description: "How many publications to return (default 10)",
			},
		},
	}
}

func (x *scholarPublicationsTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	duidOrQuery, err := requiredString(args, "duid_or_query")
	if err != nil {
		return nil, err
	}
	count, err := optionalCount(args, "count")
	if err != nil {
		return nil, err
	}

	tool.Update(ctx, fmt.Sprintf("Querying publications for '%s'...", duidOrQuery))

	return resultToMap(x.scholars.Publications(ctx, duidOrQuery, count))
}

type scholarGrantsTool struct {
	scholars *usecase.ScholarsUseCase
}

func (x *scholarGrantsTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "campus__get_scholar_grants",
		Description: "Get recent grants for a faculty member, identified by DUID or by name. A name is resolved through the directory first. An error field in the result means the lookup failed.",
		Parameters: map[string]*gollem.Parameter{
			"duid_or_query": {
				Type:        gollem.TypeString,
				Description: "Numeric DUID or a person's name",
				Required:    true,
			},
			"count": {
				Type:        gollem.TypeInteger,
				Description: "How many grants to return (default 10)",
			},
		},
	}
}

func (x *scholarGrantsTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	duidOrQuery, err := requiredString(args, "duid_or_query")
	if err != nil {
		return nil, err
	}
	count, err := optionalCount(args, "count")
	if err != nil {
		return nil, err
	}

	tool.Update(ctx, fmt.Sprintf("Querying grants for '%s'...", duidOrQuery))

	return resultToMap(x.scholars.Grants(ctx, duidOrQuery, count))
}

type scholarDetailsTool struct {
	scholars *usecase.ScholarsUseCase
}

func (x *scholarDetailsTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "campus__get_scholar_details",
		Description: "Get a faculty member's scholarly profile (title, overview, education, research interests), identified by DUID or by name. An error field in the result means the lookup failed.",
		Parameters: map[string]*gollem.Parameter{
			"duid_or_query": {
				Type:        gollem.TypeString,
				Description: "Numeric DUID or a person's name",
				Required:    true,
			},
		},
	}
}

func (x *scholarDetailsTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	duidOrQuery, err := requiredString(args, "duid_or_query")
	if err != nil {
		return nil, err
	}

	tool.Update(ctx, fmt.Sprintf("Getting scholar profile for '%s'...", duidOrQuery))

	return resultToMap(x.scholars.Details(ctx, duidOrQuery))
}
