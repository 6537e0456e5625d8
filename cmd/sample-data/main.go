package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/Adelson021/rfv/internal/sampledata"
)

// Default configuration constants.
const (
	defaultCustomers  = 500
	defaultRows       = 5000
	defaultDays       = 365
	defaultSeed       = 1
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		customers  = flag.Int("customers", defaultCustomers, "Number of distinct customers")
		rows       = flag.Int("rows", defaultRows, "Number of transaction rows")
		days       = flag.Int("days", defaultDays, "Length of the purchase date window in days")
		seed       = flag.Int64("seed", defaultSeed, "Random seed for dates and amounts")
		format     = flag.String("format", sampledata.FormatCSV, "Output format: csv or xlsx")
		outputFile = flag.String("output", "sample_transactions.csv", "Output file path")
		baseURL    = flag.String("url", "", "When set, upload to a running server instead of writing a file")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout for uploads")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sampledata.ShowHelp()
		return
	}

	if err := sampledata.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &sampledata.Config{
		Customers:  *customers,
		Rows:       *rows,
		Days:       *days,
		Seed:       *seed,
		Format:     *format,
		OutputFile: *outputFile,
		BaseURL:    *baseURL,
		Timeout:    *timeout,
		Verbose:    *verbose,
	}

	if err := sampledata.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Sample data run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
