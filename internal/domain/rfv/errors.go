package rfv

import "errors"

// Sentinel kinds for segmentation errors.
var (
	ErrNoTransactions = errors.New("no transactions to segment")
)
