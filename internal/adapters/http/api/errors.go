package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrMissingFile   = errors.New("missing file field")
	ErrBadReference  = errors.New("invalid reference_date; must be YYYY-MM-DD")
	ErrUnknownFormat = errors.New("unknown export format")
)
