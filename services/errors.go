package services

import (
	"errors"
	"fmt"
)

// The three error kinds callers branch on. Invalid input never reaches
// the network; not-found is a structured outcome, not a failure;
// upstream errors preserve the vendor status code.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotConfigured = errors.New("missing API credentials")
)

// NotFoundError marks a vendor response that was well-formed but empty:
// no geocode match, no airports, no flights, no booking options.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// UpstreamError is a failed vendor call: non-2xx response, malformed
// JSON or a vendor-reported error string.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream error (%d): %s", e.StatusCode, e.Message)
	}
	return "upstream error: " + e.Message
}

// IsNotFound reports whether err is a not-found outcome.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
