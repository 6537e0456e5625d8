// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

// Size and limit defaults.
const (
	defaultMaxUploadBytes = 20 << 20
	defaultMaxDatasets    = 16
	defaultTTLMinutes     = 120
	defaultRecallSize     = 256
	defaultPreviewRows    = 5
	defaultMaxPageSize    = 1000
	defaultTopLimit       = 10
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MaxUploadBytes caps the accepted upload size.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// MaxDatasets bounds the number of datasets held in the session store.
	MaxDatasets int `koanf:"max_datasets"`

	// DatasetTTLMinutes sets how long a dataset stays available.
	DatasetTTLMinutes int `koanf:"dataset_ttl_minutes"`

	// RecallSize bounds the upload recall cache.
	RecallSize int `koanf:"recall_size"`

	// PreviewRows sets the default number of preview rows.
	PreviewRows int `koanf:"preview_rows"`

	// MaxPageSize caps GET /datasets/{id}/segments?limit.
	MaxPageSize int `koanf:"max_page_size"`

	// TopLimit sets the default size of the top-customers list.
	TopLimit int `koanf:"top_limit"`

	// CORSAllowedOrigins lists origins allowed to call the JSON API.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// Actions merges score-to-action entries over the built-in catalog.
	Actions map[string]string `koanf:"actions"`

	// DefaultAction replaces the fallback action for unmapped scores.
	DefaultAction string `koanf:"default_action"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		MaxUploadBytes:     defaultMaxUploadBytes,
		MaxDatasets:        defaultMaxDatasets,
		DatasetTTLMinutes:  defaultTTLMinutes,
		RecallSize:         defaultRecallSize,
		PreviewRows:        defaultPreviewRows,
		MaxPageSize:        defaultMaxPageSize,
		TopLimit:           defaultTopLimit,
		CORSAllowedOrigins: []string{"*"},
	}
}
