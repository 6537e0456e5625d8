package sampledata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Adelson021/rfv/internal/domain/model"
	"github.com/Adelson021/rfv/internal/domain/types"
	"github.com/Adelson021/rfv/pkg/logger"
)

// Upload posts the generated transactions as a CSV file to a running
// server's /datasets endpoint and returns the dataset summary.
func Upload(ctx context.Context, cfg *Config, txs []model.Transaction, stats *Stats) (types.Summary, error) {
	var payload bytes.Buffer
	if err := writeCSVRows(&payload, txs); err != nil {
		return types.Summary{}, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "sample_transactions.csv")
	if err != nil {
		return types.Summary{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(payload.Bytes()); err != nil {
		return types.Summary{}, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return types.Summary{}, fmt.Errorf("failed to close form: %w", err)
	}

	start := time.Now()
	url := cfg.BaseURL + "/datasets"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return types.Summary{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return types.Summary{}, fmt.Errorf("failed to upload: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.Summary{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return types.Summary{}, fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, data)
	}

	var summary types.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return types.Summary{}, fmt.Errorf("failed to decode summary: %w", err)
	}

	stats.UploadedID = summary.ID
	stats.UploadDuration = time.Since(start)
	logger.Get().Info(ctx, "uploaded dataset",
		logger.String("datasetID", summary.ID),
		logger.Int("customers", summary.Customers),
		logger.String("reference", summary.ReferenceDate),
	)
	return summary, nil
}
