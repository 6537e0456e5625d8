package sampledata

// Output format names.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Behavior profile shares. The mix spreads recency, frequency, and value
// so quartile grades land in every bucket.
const (
	loyalShare      = 0.20 // recent, frequent, high value
	regularShare    = 0.40 // steady mid-range behavior
	occasionalShare = 0.25 // sparse purchases, lower value
	// remaining customers are lapsed: old last purchase, few rows
)

// Purchase amount bands per profile.
const (
	loyalAmountMin        = 120.0
	loyalAmountRange      = 480.0
	regularAmountMin      = 40.0
	regularAmountRange    = 160.0
	occasionalAmountMin   = 15.0
	occasionalAmountRange = 85.0
	lapsedAmountMin       = 10.0
	lapsedAmountRange     = 50.0
)

// Recency bands as fractions of the date window. A loyal customer's
// purchases cluster near the reference date, a lapsed one's near the start.
const (
	loyalRecentFraction      = 0.25
	regularRecentFraction    = 0.60
	occasionalRecentFraction = 0.90
)

// Row weight per profile when distributing rows across customers.
const (
	loyalRowWeight      = 6
	regularRowWeight    = 3
	occasionalRowWeight = 2
	lapsedRowWeight     = 1
)
