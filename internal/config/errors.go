package config

import "errors"

// Error kinds returned by Load: ErrLoadConfig wraps provider and parse
// failures (bad RFV_CONFIG file, malformed RFV_ env values), ErrInvalidConfig
// wraps validation failures with the offending field named.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
