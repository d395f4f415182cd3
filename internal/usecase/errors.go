package usecase

import crerr "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
	ErrMalformedPayload      = crerr.New("malformed upstream payload")
)
