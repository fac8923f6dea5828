package usecase

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// Keys for error values read back when building error-tagged results
const (
	statusCodeKey   = "status_code"
	payloadErrorKey = "payload_error"
)

// resultErrorText renders an upstream failure as the error field of a
// result payload. An explicit payload text attached to the error wins;
// errors carrying an upstream HTTP status use statusFormat; anything else
// is rendered with genericFormat.
func resultErrorText(err error, statusFormat, genericFormat string) string {
	if ge := goerr.Unwrap(err); ge != nil {
		values := ge.Values()
		if text, ok := values[payloadErrorKey].(string); ok {
			return text
		}
		if status, ok := values[statusCodeKey].(int); ok {
			return fmt.Sprintf(statusFormat, status)
		}
	}
	return fmt.Sprintf(genericFormat, err)
}
