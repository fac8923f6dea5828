package interfaces

import (
	"context"
	"encoding/json"

	"github.com/duke-colab/bluebook/pkg/domain/types"
)

// DirectoryClient queries the people directory API. Records come back raw
// so the resolver can validate and drop them one by one instead of failing
// a whole batch on a single malformed record.
type DirectoryClient interface {
	Search(ctx context.Context, query string) ([]json.RawMessage, error)
	Person(ctx context.Context, ldapkey types.LDAPKey) (json.RawMessage, error)
}
