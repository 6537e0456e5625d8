package ingest

import "errors"

// Sentinel kinds for ingestion errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumns    = errors.New("missing required columns")
	ErrEmptyFile         = errors.New("file contains no data rows")
	ErrBadCell           = errors.New("malformed cell")
)
