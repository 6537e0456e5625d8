// Package service provides the core application service.
package service

import (
	"time"

	"github.com/Adelson021/rfv/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxDatasets bounds the number of datasets held at once.
func WithMaxDatasets(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxDatasets = n
		}
	}
}

// WithDatasetTTL sets how long a dataset stays available after upload.
func WithDatasetTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.datasetTTL = ttl
		}
	}
}

// WithRecallSize bounds the upload recall cache.
func WithRecallSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recallSize = n
		}
	}
}

// WithMaxUploadBytes caps the accepted upload size.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithPreviewRows sets the default number of preview rows.
func WithPreviewRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.previewRows = n
		}
	}
}

// WithActions merges entries over the built-in action catalog.
func WithActions(entries map[string]string) Option {
	return func(s *Service) {
		s.actionOverrides = entries
	}
}

// WithDefaultAction replaces the fallback action for unmapped scores.
func WithDefaultAction(action string) Option {
	return func(s *Service) {
		s.defaultAction = action
	}
}
