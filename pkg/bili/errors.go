package bili

import (
	"errors"
	"fmt"
)

// Domain errors for message API calls, designed for wrapping and
// classification with errors.Is.
var (
	ErrTransport        = errors.New("bili: transport failure")
	ErrUnexpectedStatus = errors.New("bili: unexpected response status")
	ErrUnexpectedShape  = errors.New("bili: unexpected response shape")
)

// APIError is returned when the service answers with a non-zero
// business code. Body preserves the raw response for diagnostics.
type APIError struct {
	Code int64
	Body []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bili: api code %d: %s", e.Code, e.Body)
}

// IsAPIError reports whether err (or any error in its chain) is an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
