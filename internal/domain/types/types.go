// Package types contains common types shared across the application.
package types

import "time"

// SegmentRow is one scored customer in the segmented table.
type SegmentRow struct {
	CustomerID  string  `json:"customer_id"`
	RecencyDays int     `json:"recency_days"`
	Frequency   int     `json:"frequency"`
	Value       float64 `json:"value"`
	RLabel      string  `json:"r_label"`
	FLabel      string  `json:"f_label"`
	VLabel      string  `json:"v_label"`
	Score       string  `json:"score"`
	Action      string  `json:"action"`
}

// QuartileCuts holds the 25/50/75 percentile cuts for one metric.
type QuartileCuts struct {
	Q25 float64 `json:"q25"`
	Q50 float64 `json:"q50"`
	Q75 float64 `json:"q75"`
}

// Cuts groups the quartile cuts of the three RFV metrics.
type Cuts struct {
	Recency   QuartileCuts `json:"recency"`
	Frequency QuartileCuts `json:"frequency"`
	Value     QuartileCuts `json:"value"`
}

// Summary describes one uploaded dataset.
type Summary struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	UploadedAt    time.Time `json:"uploaded_at"`
	ReferenceDate string    `json:"reference_date"`
	Rows          int       `json:"rows"`
	Customers     int       `json:"customers"`
	Cuts          Cuts      `json:"cuts"`
	Duplicate     bool      `json:"duplicate,omitempty"`
}

// ServiceStats reports session counters for the stats endpoint.
type ServiceStats struct {
	Started        bool  `json:"started"`
	Uploads        int   `json:"uploads"`
	Datasets       int   `json:"datasets"`
	Customers      int   `json:"customers"`
	RecallEntries  int   `json:"recall_entries"`
	MaxDatasets    int   `json:"max_datasets"`
	DatasetTTLMin  int   `json:"dataset_ttl_minutes"`
	MaxUploadBytes int64 `json:"max_upload_bytes"`
}

// ScoreCount is one row of the per-score distribution.
type ScoreCount struct {
	Score  string `json:"score"`
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// TransactionRow is a raw input row echoed by the preview endpoint.
type TransactionRow struct {
	CustomerID   string  `json:"customer_id"`
	PurchaseDate string  `json:"purchase_date"`
	PurchaseCode string  `json:"purchase_code"`
	Amount       float64 `json:"amount"`
}
