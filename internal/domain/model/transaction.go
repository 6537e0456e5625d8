// Package model contains domain models passed between layers.
package model

import "time"

// Transaction represents one purchase row parsed from an uploaded file.
// Fields mirror the input columns ID_cliente, DiaCompra, CodigoCompra,
// and ValorTotal.
type Transaction struct {
	CustomerID   string    // customer identifier
	PurchaseDate time.Time // day of purchase
	PurchaseCode string    // purchase identifier, distinct codes drive frequency
	Amount       float64   // purchase amount
}

// CustomerMetrics holds the three derived RFV metrics for one customer.
type CustomerMetrics struct {
	CustomerID  string
	RecencyDays int     // days between the reference date and the last purchase
	Frequency   int     // number of distinct purchase codes
	Value       float64 // summed purchase amounts
}
