package apperr

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrNoMarkedTerms        = errors.New("no marked terms")
	ErrMalformedModelOutput = errors.New("malformed model output")
	ErrSinkUnavailable      = errors.New("flashcard sink unavailable")
	ErrDuplicateCard        = errors.New("duplicate card")
	ErrExportInFlight       = errors.New("export already in flight")
)
