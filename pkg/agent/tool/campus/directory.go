package campus

import (
	"context"
	"fmt"

	"github.com/m-mizutani/gollem"

	"github.com/duke-colab/bluebook/pkg/agent/tool"
	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/duke-colab/bluebook/pkg/usecase"
)

type searchDirectoryTool struct {
	directory *usecase.DirectoryUseCase
}

func (x *searchDirectoryTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "campus__search_directory",
		Description: "Search the campus directory for people by name, NetID or email. Returns matching entries with their ldapkey for use with campus__get_person_details. An error field in the result means the upstream lookup failed.",
		Parameters: map[string]*gollem.Parameter{
			"query": {
				Type:        gollem.TypeString,
				Description: "Name, NetID or email address to search for",
				Required:    true,
			},
		},
	}
}

func (x *searchDirectoryTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	query, err := requiredString(args, "query")
	if err != nil {
		return nil, err
	}

	tool.Update(ctx, fmt.Sprintf("Searching directory for '%s'...", query))

	return resultToMap(x.directory.Search(ctx, query))
}

type personDetailsTool struct {
	directory *usecase.DirectoryUseCase
}

func (x *personDetailsTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "campus__get_person_details",
		Description: "Get the full directory record for one person by ldapkey (from campus__search_directory results): title, department, campus address, phone and email.",
		Parameters: map[string]*gollem.Parameter{
			"ldapkey": {
				Type:        gollem.TypeString,
				Description: "The person's ldapkey from a directory search result",
				Required:    true,
			},
		},
	}
}

func (x *personDetailsTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	ldapkey, err := requiredString(args, "ldapkey")
	if err != nil {
		return nil, err
	}

	tool.Update(ctx, fmt.Sprintf("Getting person details for '%s'...", ldapkey))

	return resultToMap(x.directory.PersonDetails(ctx, types.LDAPKey(ldapkey)))
}
