// Package service provides the core application service that implements
// the dependencies required by the HTTP API.
package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Adelson021/rfv/internal/adapters/ingest"
	"github.com/Adelson021/rfv/internal/adapters/repository"
	"github.com/Adelson021/rfv/internal/domain/actions"
	"github.com/Adelson021/rfv/internal/domain/dedupe"
	"github.com/Adelson021/rfv/internal/domain/rfv"
	"github.com/Adelson021/rfv/internal/domain/types"
	"github.com/Adelson021/rfv/pkg/logger"
	"github.com/Adelson021/rfv/pkg/metrics"
)

// Default service configuration.
const (
	defaultMaxDatasets    = 16
	defaultDatasetTTL     = 2 * time.Hour
	defaultRecallSize     = 256
	defaultMaxUploadBytes = 20 << 20
	defaultPreviewRows    = 5
)

// Service wires ingest, segmentation, and the session store together.
// The whole upload pipeline runs synchronously inside the calling request.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	recall    dedupe.Recall
	segmenter rfv.Segmenter
	catalog   *actions.Catalog

	// Configuration
	maxDatasets     int
	datasetTTL      time.Duration
	recallSize      int
	maxUploadBytes  int64
	previewRows     int
	actionOverrides map[string]string
	defaultAction   string

	// State
	started bool
	uploads int

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxDatasets:    defaultMaxDatasets,
		datasetTTL:     defaultDatasetTTL,
		recallSize:     defaultRecallSize,
		maxUploadBytes: defaultMaxUploadBytes,
		previewRows:    defaultPreviewRows,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.catalog = actions.NewCatalog(
		actions.WithOverrides(s.actionOverrides),
		actions.WithDefault(s.defaultAction),
	)
	s.segmenter = rfv.NewSegmenter(rfv.WithCatalog(s.catalog))
	s.recall = dedupe.NewInMemoryRecall(dedupe.WithMaxSize(s.recallSize))
	s.store = repository.NewMemStore(
		repository.WithMaxDatasets(s.maxDatasets),
		repository.WithTTL(s.datasetTTL),
		repository.WithEvictionFunc(s.forgetDataset),
	)

	s.started = true
	s.logger.Info(ctx, "segmentation service started",
		logger.Int("maxDatasets", s.maxDatasets),
		logger.Duration("datasetTTL", s.datasetTTL),
		logger.Int("recallSize", s.recallSize),
		logger.Int64("maxUploadBytes", s.maxUploadBytes),
	)
	return nil
}

// Stop shuts the service down. Datasets are session-scoped and simply
// dropped with the process.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "segmentation service stopped")
}

// forgetDataset drops the recall entry of an evicted or expired dataset.
func (s *Service) forgetDataset(ds *repository.Dataset) {
	if s.recall != nil && ds.ContentHash != "" {
		s.recall.Forget(context.Background(), ds.ContentHash)
	}
}

// Upload runs the full pipeline on an uploaded file: read, parse, compute
// metrics, score, store. A zero reference means "use the dataset's most
// recent purchase date". Re-uploading byte-identical content returns the
// existing dataset flagged as duplicate.
func (s *Service) Upload(ctx context.Context, r io.Reader, filename string, reference time.Time) (types.Summary, error) {
	data, err := s.readCapped(r)
	if err != nil {
		metrics.RecordUploadFailure("read")
		return types.Summary{}, err
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	if id, ok := s.recall.Lookup(ctx, hash); ok {
		if ds, err := s.store.Get(ctx, id); err == nil {
			s.logger.Debug(ctx, "upload answered from recall cache",
				logger.String("datasetID", ds.ID),
				logger.String("filename", filename),
			)
			metrics.RecordDuplicateUpload()
			return s.summaryOf(ds, true), nil
		}
		// Stale entry; the dataset expired or was evicted.
		s.recall.Forget(ctx, hash)
	}

	parseStart := time.Now()
	txs, err := ingest.Parse(ctx, bytes.NewReader(data), filename)
	if err != nil {
		metrics.RecordUploadFailure("parse")
		return types.Summary{}, fmt.Errorf("upload rejected: %w", err)
	}
	metrics.RecordRowsParsed(len(txs))
	metrics.RecordParseDuration(float64(time.Since(parseStart).Milliseconds()))

	scoreStart := time.Now()
	result, err := s.segmenter.Segment(ctx, txs, reference)
	if err != nil {
		metrics.RecordUploadFailure("scoring")
		return types.Summary{}, fmt.Errorf("segmentation failed: %w", err)
	}
	metrics.RecordScoringDuration(float64(time.Since(scoreStart).Milliseconds()))
	metrics.RecordCustomersScored(len(result.Rows))

	ds := &repository.Dataset{
		ID:           uuid.NewString(),
		Filename:     filename,
		UploadedAt:   time.Now(),
		ContentHash:  hash,
		Reference:    result.Reference,
		Transactions: txs,
		Rows:         result.Rows,
		Cuts:         result.Cuts,
	}
	if err := s.store.Put(ctx, ds); err != nil {
		metrics.RecordUploadFailure("store")
		return types.Summary{}, fmt.Errorf("failed to store dataset: %w", err)
	}
	s.recall.Remember(ctx, hash, ds.ID)

	s.mu.Lock()
	s.uploads++
	s.mu.Unlock()

	metrics.RecordUpload()
	s.updateGauges(ctx)

	s.logger.Info(ctx, "dataset scored",
		logger.String("datasetID", ds.ID),
		logger.String("filename", filename),
		logger.Int("rows", len(txs)),
		logger.Int("customers", len(result.Rows)),
		logger.Time("reference", result.Reference),
	)
	return s.summaryOf(ds, false), nil
}

// readCapped reads the whole upload, rejecting payloads over the limit.
func (s *Service) readCapped(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrUploadTooLarge, s.maxUploadBytes)
	}
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}
	return data, nil
}

// Datasets returns summaries of all live datasets.
func (s *Service) Datasets(ctx context.Context) []types.Summary {
	list := s.store.List(ctx)
	out := make([]types.Summary, len(list))
	for i, ds := range list {
		out[i] = s.summaryOf(ds, false)
	}
	return out
}

// Dataset returns the summary of one dataset.
func (s *Service) Dataset(ctx context.Context, id string) (types.Summary, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return types.Summary{}, err
	}
	return s.summaryOf(ds, false), nil
}

// DeleteDataset drops a dataset from the session store.
func (s *Service) DeleteDataset(ctx context.Context, id string) error {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.recall.Forget(ctx, ds.ContentHash)
	s.updateGauges(ctx)
	return nil
}

// Preview returns the first rows raw transactions of a dataset.
func (s *Service) Preview(ctx context.Context, id string, rows int) ([]types.TransactionRow, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rows <= 0 {
		rows = s.previewRows
	}
	if rows > len(ds.Transactions) {
		rows = len(ds.Transactions)
	}
	out := make([]types.TransactionRow, rows)
	for i := 0; i < rows; i++ {
		tx := ds.Transactions[i]
		out[i] = types.TransactionRow{
			CustomerID:   tx.CustomerID,
			PurchaseDate: tx.PurchaseDate.Format("2006-01-02"),
			PurchaseCode: tx.PurchaseCode,
			Amount:       tx.Amount,
		}
	}
	return out, nil
}

// Segments returns the scored table, optionally filtered to one RFV score
// and paginated. A limit <= 0 returns every matching row. The second return
// value is the total number of matching rows before pagination.
func (s *Service) Segments(ctx context.Context, id, score string, limit, offset int) ([]types.SegmentRow, int, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	rows := filterByScore(ds.Rows, score)
	total := len(rows)

	if offset > len(rows) {
		offset = len(rows)
	}
	if offset > 0 {
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, total, nil
}

// Distribution returns per-score customer counts with their actions,
// ordered by count descending then score ascending.
func (s *Service) Distribution(ctx context.Context, id string) ([]types.ScoreCount, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, row := range ds.Rows {
		counts[row.Score]++
	}

	out := make([]types.ScoreCount, 0, len(counts))
	for score, count := range counts {
		out = append(out, types.ScoreCount{
			Score:  score,
			Action: s.catalog.Resolve(score),
			Count:  count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Score < out[j].Score
	})
	return out, nil
}

// Top returns the best-segment (AAA) customers ordered by value descending.
func (s *Service) Top(ctx context.Context, id string, limit int) ([]types.SegmentRow, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	top := filterByScore(ds.Rows, "AAA")
	sorted := make([]types.SegmentRow, len(top))
	copy(sorted, top)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Actions returns the effective catalog and the default action.
func (s *Service) Actions(_ context.Context) (map[string]string, string) {
	return s.catalog.All(), s.catalog.Default()
}

// GetStats returns session counters for the stats endpoint.
func (s *Service) GetStats() types.ServiceStats {
	s.mu.RLock()
	started := s.started
	uploads := s.uploads
	s.mu.RUnlock()

	stats := types.ServiceStats{
		Started:        started,
		Uploads:        uploads,
		MaxDatasets:    s.maxDatasets,
		DatasetTTLMin:  int(s.datasetTTL.Minutes()),
		MaxUploadBytes: s.maxUploadBytes,
	}

	if started {
		ctx := context.Background()
		stats.Datasets = s.store.Count(ctx)
		stats.Customers = s.liveCustomers(ctx)
		stats.RecallEntries = int(s.recall.Size())
		s.updateGauges(ctx)
	}
	return stats
}

// liveCustomers counts scored customers across all live datasets.
func (s *Service) liveCustomers(ctx context.Context) int {
	total := 0
	for _, ds := range s.store.List(ctx) {
		total += len(ds.Rows)
	}
	return total
}

// updateGauges refreshes the session state gauges.
func (s *Service) updateGauges(ctx context.Context) {
	metrics.UpdateDatasetsLive(s.store.Count(ctx))
	metrics.UpdateCustomersLive(s.liveCustomers(ctx))
	metrics.UpdateRecallEntries(s.recall.Size())
}

// summaryOf builds the dataset summary returned to clients.
func (s *Service) summaryOf(ds *repository.Dataset, duplicate bool) types.Summary {
	return types.Summary{
		ID:            ds.ID,
		Filename:      ds.Filename,
		UploadedAt:    ds.UploadedAt,
		ReferenceDate: ds.Reference.Format("2006-01-02"),
		Rows:          len(ds.Transactions),
		Customers:     len(ds.Rows),
		Cuts:          ds.Cuts,
		Duplicate:     duplicate,
	}
}

// filterByScore keeps rows whose score equals the filter, compared
// case-insensitively. An empty filter keeps every row.
func filterByScore(rows []types.SegmentRow, score string) []types.SegmentRow {
	if score == "" {
		return rows
	}
	want := strings.ToUpper(strings.TrimSpace(score))
	out := make([]types.SegmentRow, 0)
	for _, row := range rows {
		if row.Score == want {
			out = append(out, row)
		}
	}
	return out
}
