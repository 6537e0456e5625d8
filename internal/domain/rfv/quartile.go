package rfv

import (
	"math"
	"sort"

	"github.com/Adelson021/rfv/internal/domain/model"
	"github.com/Adelson021/rfv/internal/domain/types"
)

// Quartile probabilities.
const (
	q25 = 0.25
	q50 = 0.50
	q75 = 0.75
)

// Percentile computes the p-quantile of values using linear interpolation
// at position p*(n-1) over the sorted input. values must be sorted ascending
// and non-empty.
func Percentile(values []float64, p float64) float64 {
	n := len(values)
	if n == 1 {
		return values[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if lo+1 >= n {
		return values[n-1]
	}
	return values[lo]*(1-frac) + values[lo+1]*frac
}

// LabelAscending grades x where smaller is better (recency).
func LabelAscending(x float64, c types.QuartileCuts) string {
	switch {
	case x <= c.Q25:
		return "A"
	case x <= c.Q50:
		return "B"
	case x <= c.Q75:
		return "C"
	default:
		return "D"
	}
}

// LabelDescending grades x where larger is better (frequency and value).
func LabelDescending(x float64, c types.QuartileCuts) string {
	switch {
	case x <= c.Q25:
		return "D"
	case x <= c.Q50:
		return "C"
	case x <= c.Q75:
		return "B"
	default:
		return "A"
	}
}

// cutsOf computes the quartile cuts of each metric over the dataset.
func cutsOf(metrics []model.CustomerMetrics) types.Cuts {
	recency := make([]float64, len(metrics))
	frequency := make([]float64, len(metrics))
	value := make([]float64, len(metrics))
	for i, m := range metrics {
		recency[i] = float64(m.RecencyDays)
		frequency[i] = float64(m.Frequency)
		value[i] = m.Value
	}
	return types.Cuts{
		Recency:   cutsFor(recency),
		Frequency: cutsFor(frequency),
		Value:     cutsFor(value),
	}
}

func cutsFor(values []float64) types.QuartileCuts {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return types.QuartileCuts{
		Q25: Percentile(sorted, q25),
		Q50: Percentile(sorted, q50),
		Q75: Percentile(sorted, q75),
	}
}
