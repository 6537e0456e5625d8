package repository

import "errors"

// Sentinel kinds for dataset store errors.
var (
	ErrNotFound   = errors.New("dataset not found")
	ErrEmptyID    = errors.New("empty dataset id")
	ErrNilDataset = errors.New("nil dataset")
)
