package interfaces

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/duke-colab/bluebook/pkg/domain/types"
)

// ScholarClient queries the scholars profile API. Items are returned as
// gjson results because the upstream payload is a deeply nested attribute
// bag whose shape varies by record type.
type ScholarClient interface {
	Publications(ctx context.Context, duid types.DUID, count int) ([]gjson.Result, error)
	Grants(ctx context.Context, duid types.DUID, count int) ([]gjson.Result, error)
	Profile(ctx context.Context, duid types.DUID) ([]gjson.Result, error)
}
