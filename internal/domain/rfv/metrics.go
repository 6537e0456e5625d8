package rfv

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Adelson021/rfv/internal/domain/model"
)

const hoursPerDay = 24

// ReferenceDate returns the most recent purchase date in txs.
func ReferenceDate(txs []model.Transaction) time.Time {
	var max time.Time
	for _, tx := range txs {
		if tx.PurchaseDate.After(max) {
			max = tx.PurchaseDate
		}
	}
	return max
}

// ComputeMetrics groups transactions by customer and derives the three RFV
// metrics. Customers are returned in ascending id order with numeric-aware
// comparison so identical input always yields an identical table.
func ComputeMetrics(txs []model.Transaction, reference time.Time) []model.CustomerMetrics {
	type accumulator struct {
		last  time.Time
		codes map[string]struct{}
		value float64
	}

	byCustomer := make(map[string]*accumulator)
	for _, tx := range txs {
		acc, ok := byCustomer[tx.CustomerID]
		if !ok {
			acc = &accumulator{codes: make(map[string]struct{})}
			byCustomer[tx.CustomerID] = acc
		}
		if tx.PurchaseDate.After(acc.last) {
			acc.last = tx.PurchaseDate
		}
		acc.codes[tx.PurchaseCode] = struct{}{}
		acc.value += tx.Amount
	}

	metrics := make([]model.CustomerMetrics, 0, len(byCustomer))
	for id, acc := range byCustomer {
		metrics = append(metrics, model.CustomerMetrics{
			CustomerID:  id,
			RecencyDays: int(reference.Sub(acc.last).Hours() / hoursPerDay),
			Frequency:   len(acc.codes),
			Value:       acc.value,
		})
	}

	sort.Slice(metrics, func(i, j int) bool {
		return compareIDs(metrics[i].CustomerID, metrics[j].CustomerID) < 0
	})
	return metrics
}

// compareIDs orders customer ids numerically when both parse as integers,
// falling back to a plain string compare otherwise. Ids with the same
// numeric value ("01" vs "1") tie-break on the string compare so the
// order never depends on map iteration.
func compareIDs(a, b string) int {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
	}
	return strings.Compare(a, b)
}
