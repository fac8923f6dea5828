package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/duke-colab/bluebook/pkg/domain/interfaces"
	"github.com/duke-colab/bluebook/pkg/domain/model"
	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/duke-colab/bluebook/pkg/utils/logging"
	"github.com/duke-colab/bluebook/pkg/utils/ttlcache"
)

// DirectoryUseCase resolves people against the directory API behind
// query-keyed TTL caches. Operations return error-tagged payloads rather
// than Go errors: an upstream failure is ordinary data for the caller, and
// failed lookups are never cached.
type DirectoryUseCase struct {
	client  interfaces.DirectoryClient
	search  *ttlcache.Store[*model.DirectorySearchResult]
	details *ttlcache.Store[*model.PersonDetailResult]
}

func NewDirectoryUseCase(client interfaces.DirectoryClient, clock func() time.Time, ttl time.Duration) *DirectoryUseCase {
	return &DirectoryUseCase{
		client:  client,
		search:  ttlcache.New[*model.DirectorySearchResult](ttl, ttlcache.WithClock(clock)),
		details: ttlcache.New[*model.PersonDetailResult](ttl, ttlcache.WithClock(clock)),
	}
}

// Search looks up people matching the query. The raw query is the cache
// key, so lookups are case-sensitive exactly like the upstream API.
func (uc *DirectoryUseCase) Search(ctx context.Context, query string) *model.DirectorySearchResult {
	result, err := uc.search.GetOrRefresh(ctx, query, func(ctx context.Context) (*model.DirectorySearchResult, error) {
		return uc.fetchSearch(ctx, query)
	})
	if err != nil {
		return &model.DirectorySearchResult{
			Error:   resultErrorText(err, "Error in directory search: %d", "%v"),
			Results: []*model.DirectoryPerson{},
			Query:   query,
		}
	}
	return result
}

// SearchByNetID resolves a NetID through the shared search cache. The
// upstream search matches NetIDs directly, so this is a plain delegation.
func (uc *DirectoryUseCase) SearchByNetID(ctx context.Context, netid types.NetID) *model.DirectorySearchResult {
	return uc.Search(ctx, string(netid))
}

// SearchByName resolves a person name through the shared search cache.
func (uc *DirectoryUseCase) SearchByName(ctx context.Context, name string) *model.DirectorySearchResult {
	return uc.Search(ctx, name)
}

// PersonDetails fetches the detailed record behind a search hit's ldapkey.
func (uc *DirectoryUseCase) PersonDetails(ctx context.Context, ldapkey types.LDAPKey) *model.PersonDetailResult {
	result, err := uc.details.GetOrRefresh(ctx, string(ldapkey), func(ctx context.Context) (*model.PersonDetailResult, error) {
		return uc.fetchPerson(ctx, ldapkey)
	})
	if err != nil {
		return &model.PersonDetailResult{
			Error:   resultErrorText(err, "Error getting person details: %d", "%v"),
			LDAPKey: string(ldapkey),
		}
	}
	return result
}

// fetchSearch performs the upstream search and validates each record
// individually. Invalid records are dropped with a warning so one bad
// entry cannot poison the whole result.
func (uc *DirectoryUseCase) fetchSearch(ctx context.Context, query string) (*model.DirectorySearchResult, error) {
	records, err := uc.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	logger := logging.From(ctx)
	results := make([]*model.DirectoryPerson, 0, len(records))
	for _, record := range records {
		person, err := model.ParseDirectoryPerson(record)
		if err != nil {
			logger.Warn("Dropping directory record that failed validation",
				"query", query, "error", err)
			continue
		}
		results = append(results, person)
	}

	return &model.DirectorySearchResult{
		Results: results,
		Count:   len(results),
		Query:   query,
	}, nil
}

func (uc *DirectoryUseCase) fetchPerson(ctx context.Context, ldapkey types.LDAPKey) (*model.PersonDetailResult, error) {
	raw, err := uc.client.Person(ctx, ldapkey)
	if err != nil {
		return nil, err
	}

	person, err := model.ParseDetailedPerson(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "person record failed validation",
			goerr.V("ldapkey", ldapkey),
			goerr.V(payloadErrorKey, fmt.Sprintf("Validation error: %v", err)))
	}

	return &model.PersonDetailResult{
		Person:  person,
		LDAPKey: string(ldapkey),
	}, nil
}
