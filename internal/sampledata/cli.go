package sampledata

import (
	"fmt"
	"os"

	"github.com/Adelson021/rfv/pkg/logger"
)

// SetupLogging initializes the logger for the generator tool.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		if err := logger.SetLevelString("debug"); err != nil {
			return fmt.Errorf("failed to set log level: %w", err)
		}
	}
	return nil
}

// ShowHelp prints usage information for the sample data tool.
func ShowHelp() {
	os.Stdout.WriteString(`RFV Sample Data Tool
====================

Generates synthetic purchase transactions shaped for RFV segmentation:
a mix of loyal, regular, occasional, and lapsed customers so grades
land in every quartile bucket.

Usage:
  go run cmd/sample-data/main.go [options]

Options:
  -customers int
        Number of distinct customers (default 500)
  -rows int
        Number of transaction rows (default 5000)
  -days int
        Length of the purchase date window in days, ending today (default 365)
  -seed int
        Random seed; identical seeds yield identical dates and amounts (default 1)
  -format string
        Output format: csv or xlsx (default "csv")
  -output string
        Output file path (default "sample_transactions.csv")
  -url string
        When set, upload to a running server instead of writing a file
  -timeout duration
        HTTP request timeout for uploads (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Write a CSV file with default settings
  go run cmd/sample-data/main.go

  # Write a larger XLSX file
  go run cmd/sample-data/main.go -rows 50000 -customers 2000 -format xlsx -output big.xlsx

  # Upload straight to a running server
  go run cmd/sample-data/main.go -url http://localhost:9080
`)
}
