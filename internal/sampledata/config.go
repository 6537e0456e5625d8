package sampledata

import "time"

// Config holds configuration for the sample data generator.
type Config struct {
	Customers  int           // number of distinct customers
	Rows       int           // number of transaction rows
	Days       int           // length of the purchase date window, ending today
	Seed       int64         // random seed; identical seeds yield identical files
	Format     string        // output format: csv or xlsx
	OutputFile string        // output file path
	BaseURL    string        // when set, upload to a running server instead of writing a file
	Timeout    time.Duration // HTTP request timeout for uploads
	Verbose    bool          // enable verbose logging
}

// Stats holds generation statistics.
type Stats struct {
	RowsGenerated  int
	CustomersUsed  int
	TotalValue     float64
	EarliestDate   time.Time
	LatestDate     time.Time
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	UploadedID     string
	UploadDuration time.Duration
}
