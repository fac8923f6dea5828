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

// DefaultScholarCount is the publications and grants page size used when
// the caller does not ask for one.
const DefaultScholarCount = 10

// ScholarsUseCase resolves scholarly profiles. Input may be a canonical
// duid or any directory query; non-duid input is resolved through the
// directory resolver first, sharing its cache. Like the directory
// resolver, operations return error-tagged payloads instead of Go errors,
// and failed lookups are never cached.
type ScholarsUseCase struct {
	client       interfaces.ScholarClient
	directory    *DirectoryUseCase
	publications *ttlcache.Store[*model.PublicationsResult]
	grants       *ttlcache.Store[*model.GrantsResult]
	details      *ttlcache.Store[*model.ScholarDetailsResult]
}

func NewScholarsUseCase(client interfaces.ScholarClient, directory *DirectoryUseCase, clock func() time.Time, ttl time.Duration) *ScholarsUseCase {
	return &ScholarsUseCase{
		client:       client,
		directory:    directory,
		publications: ttlcache.New[*model.PublicationsResult](ttl, ttlcache.WithClock(clock)),
		grants:       ttlcache.New[*model.GrantsResult](ttl, ttlcache.WithClock(clock)),
		details:      ttlcache.New[*model.ScholarDetailsResult](ttl, ttlcache.WithClock(clock)),
	}
}

// Publications returns up to count publications for a scholar
func (uc *ScholarsUseCase) Publications(ctx context.Context, duidOrQuery string, count int) *model.PublicationsResult {
	if count <= 0 {
		count = DefaultScholarCount
	}

	duid, ok := uc.resolveDUID(ctx, duidOrQuery)
	if !ok {
		return &model.PublicationsResult{
			Error:        noMatchText(duidOrQuery),
			Publications: []model.ScholarPublication{},
			DUID:         duidOrQuery,
		}
	}

	result, err := uc.publications.GetOrRefresh(ctx, scholarCacheKey(duid, count), func(ctx context.Context) (*model.PublicationsResult, error) {
		return uc.fetchPublications(ctx, duid, count)
	})
	if err != nil {
		return &model.PublicationsResult{
			Error: resultErrorText(err,
				"Error querying publications: Status %d",
				"Exception in publications query: %v"),
			Publications: []model.ScholarPublication{},
			DUID:         string(duid),
		}
	}
	return result
}

// Grants returns up to count grants for a scholar
func (uc *ScholarsUseCase) Grants(ctx context.Context, duidOrQuery string, count int) *model.GrantsResult {
	if count <= 0 {
		count = DefaultScholarCount
	}

	duid, ok := uc.resolveDUID(ctx, duidOrQuery)
	if !ok {
		return &model.GrantsResult{
			Error:  noMatchText(duidOrQuery),
			Grants: []model.ScholarGrant{},
			DUID:   duidOrQuery,
		}
	}

	result, err := uc.grants.GetOrRefresh(ctx, scholarCacheKey(duid, count), func(ctx context.Context) (*model.GrantsResult, error) {
		return uc.fetchGrants(ctx, duid, count)
	})
	if err != nil {
		return &model.GrantsResult{
			Error: resultErrorText(err,
				"Error querying grants: Status %d",
				"Exception in grants query: %v"),
			Grants: []model.ScholarGrant{},
			DUID:   string(duid),
		}
	}
	return result
}

// Details returns the projected profile of a scholar
func (uc *ScholarsUseCase) Details(ctx context.Context, duidOrQuery string) *model.ScholarDetailsResult {
	duid, ok := uc.resolveDUID(ctx, duidOrQuery)
	if !ok {
		return &model.ScholarDetailsResult{
			Error: noMatchText(duidOrQuery),
			DUID:  duidOrQuery,
		}
	}

	result, err := uc.details.GetOrRefresh(ctx, string(duid), func(ctx context.Context) (*model.ScholarDetailsResult, error) {
		return uc.fetchDetails(ctx, duid)
	})
	if err != nil {
		return &model.ScholarDetailsResult{
			Error: resultErrorText(err,
				"Error querying scholar details: Status %d",
				"Exception in scholar details query: %v"),
			DUID: string(duid),
		}
	}
	return result
}

// resolveDUID turns free-form input into a canonical duid. All-digit
// input is used as-is; anything else goes through a directory search and
// the first hit wins. Ambiguity is resolved silently.
func (uc *ScholarsUseCase) resolveDUID(ctx context.Context, duidOrQuery string) (types.DUID, bool) {
	if duid := types.DUID(duidOrQuery); duid.IsCanonical() {
		return duid, true
	}

	result := uc.directory.Search(ctx, duidOrQuery)
	if result.Error != "" || len(result.Results) == 0 {
		logging.From(ctx).Warn("No directory results for scholar resolution",
			"query", duidOrQuery)
		return "", false
	}
	return types.DUID(result.Results[0].DUID), true
}

func (uc *ScholarsUseCase) fetchPublications(ctx context.Context, duid types.DUID, count int) (*model.PublicationsResult, error) {
	items, err := uc.client.Publications(ctx, duid, count)
	if err != nil {
		return nil, err
	}

	publications := make([]model.ScholarPublication, 0, len(items))
	for _, item := range items {
		publications = append(publications, projectPublication(item))
	}

	return &model.PublicationsResult{
		Publications: publications,
		Count:        len(publications),
		DUID:         string(duid),
	}, nil
}

func (uc *ScholarsUseCase) fetchGrants(ctx context.Context, duid types.DUID, count int) (*model.GrantsResult, error) {
	items, err := uc.client.Grants(ctx, duid, count)
	if err != nil {
		return nil, err
	}

	grants := make([]model.ScholarGrant, 0, len(items))
	for _, item := range items {
		grants = append(grants, projectGrant(item))
	}

	return &model.GrantsResult{
		Grants: grants,
		Count:  len(grants),
		DUID:   string(duid),
	}, nil
}

func (uc *ScholarsUseCase) fetchDetails(ctx context.Context, duid types.DUID) (*model.ScholarDetailsResult, error) {
	items, err := uc.client.Profile(ctx, duid)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, goerr.New("profile query returned no items",
			goerr.V("duid", duid),
			goerr.V(payloadErrorKey, "No details found for this person"))
	}

	return &model.ScholarDetailsResult{
		Scholar: projectScholarDetails(duid, items[0]),
		DUID:    string(duid),
	}, nil
}

func scholarCacheKey(duid types.DUID, count int) string {
	return fmt.Sprintf("%s_%d", duid, count)
}

func noMatchText(input string) string {
	return fmt.Sprintf("Could not find a person matching: %s", input)
}
