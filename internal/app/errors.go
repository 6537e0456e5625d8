package service

import "errors"

// Sentinel kinds for upload errors.
var (
	ErrUploadTooLarge = errors.New("upload too large")
	ErrEmptyUpload    = errors.New("empty upload")
)
