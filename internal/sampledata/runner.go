package sampledata

import (
	"context"
	"fmt"
	"time"

	"github.com/Adelson021/rfv/pkg/logger"
)

// Run executes the sample data workflow: generate transactions and
// either write them to a file or upload them to a running server.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting sample data generation",
		logger.Int("customers", cfg.Customers),
		logger.Int("rows", cfg.Rows),
		logger.Int("days", cfg.Days),
		logger.Int64("seed", cfg.Seed),
		logger.String("format", cfg.Format),
		logger.String("output", cfg.OutputFile),
		logger.String("baseURL", cfg.BaseURL),
		logger.Any("verbose", cfg.Verbose))

	txs, err := Generate(ctx, cfg, stats)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if cfg.BaseURL != "" {
		summary, err := Upload(ctx, cfg, txs, stats)
		if err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}
		logger.Get().Info(ctx, "dataset available",
			logger.String("datasetID", summary.ID),
			logger.Any("duplicate", summary.Duplicate))
	} else {
		if err := WriteFile(ctx, cfg, txs); err != nil {
			return fmt.Errorf("write failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "sample data run completed")
	return nil
}

// displayFinalStats prints the final generation statistics.
func displayFinalStats(stats *Stats) {
	var rowsPerSecond float64
	if stats.Duration > 0 {
		rowsPerSecond = float64(stats.RowsGenerated) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("rowsGenerated", stats.RowsGenerated),
		logger.Int("customersUsed", stats.CustomersUsed),
		logger.Float64("totalValue", stats.TotalValue),
		logger.String("earliestDate", stats.EarliestDate.Format(dateLayout)),
		logger.String("latestDate", stats.LatestDate.Format(dateLayout)),
		logger.String("uploadedID", stats.UploadedID),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("rowsPerSecond", rowsPerSecond))
}
