// Package rfv derives per-customer recency, frequency, and value metrics
// and grades each metric into quartile letters A-D.
package rfv

import (
	"context"
	"time"

	"github.com/Adelson021/rfv/internal/domain/actions"
	"github.com/Adelson021/rfv/internal/domain/model"
	"github.com/Adelson021/rfv/internal/domain/types"
)

// Result holds everything derived from one set of transactions.
type Result struct {
	Reference time.Time
	Metrics   []model.CustomerMetrics
	Cuts      types.Cuts
	Rows      []types.SegmentRow
}

// Segmenter computes RFV segmentation over parsed transactions.
type Segmenter interface {
	// Segment derives metrics, quartile cuts, and scored rows. A zero
	// reference time means "use the dataset's most recent purchase date".
	Segment(ctx context.Context, txs []model.Transaction, reference time.Time) (Result, error)
}

// Option applies a configuration option to the quartile segmenter.
type Option func(*quartileSegmenter)

// WithCatalog sets the marketing action catalog used to annotate rows.
func WithCatalog(catalog *actions.Catalog) Option {
	return func(s *quartileSegmenter) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// quartileSegmenter labels each metric by its quartile position. Quartile
// cuts are recomputed from the current dataset on every call, never reused.
type quartileSegmenter struct {
	catalog *actions.Catalog
}

// NewSegmenter creates a segmenter with the built-in action catalog.
func NewSegmenter(opts ...Option) Segmenter {
	s := &quartileSegmenter{
		catalog: actions.NewCatalog(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *quartileSegmenter) Segment(ctx context.Context, txs []model.Transaction, reference time.Time) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(txs) == 0 {
		return Result{}, ErrNoTransactions
	}

	if reference.IsZero() {
		reference = ReferenceDate(txs)
	}

	metrics := ComputeMetrics(txs, reference)
	cuts := cutsOf(metrics)

	rows := make([]types.SegmentRow, len(metrics))
	for i, m := range metrics {
		r := LabelAscending(float64(m.RecencyDays), cuts.Recency)
		f := LabelDescending(float64(m.Frequency), cuts.Frequency)
		v := LabelDescending(m.Value, cuts.Value)
		score := r + f + v
		rows[i] = types.SegmentRow{
			CustomerID:  m.CustomerID,
			RecencyDays: m.RecencyDays,
			Frequency:   m.Frequency,
			Value:       m.Value,
			RLabel:      r,
			FLabel:      f,
			VLabel:      v,
			Score:       score,
			Action:      s.catalog.Resolve(score),
		}
	}

	return Result{
		Reference: reference,
		Metrics:   metrics,
		Cuts:      cuts,
		Rows:      rows,
	}, nil
}
