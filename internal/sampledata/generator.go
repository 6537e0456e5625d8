package sampledata

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/Adelson021/rfv/internal/domain/model"
	"github.com/Adelson021/rfv/pkg/logger"
)

const hoursPerDay = 24

// profile describes one customer behavior class.
type profile struct {
	name        string
	amountMin   float64
	amountRange float64
	// purchases land between minBack and maxBack fractions of the window,
	// counted back from the reference date
	minBack   float64
	maxBack   float64
	rowWeight int
}

var profiles = []profile{
	{name: "loyal", amountMin: loyalAmountMin, amountRange: loyalAmountRange, minBack: 0, maxBack: loyalRecentFraction, rowWeight: loyalRowWeight},
	{name: "regular", amountMin: regularAmountMin, amountRange: regularAmountRange, minBack: 0, maxBack: regularRecentFraction, rowWeight: regularRowWeight},
	{name: "occasional", amountMin: occasionalAmountMin, amountRange: occasionalAmountRange, minBack: 0.1, maxBack: occasionalRecentFraction, rowWeight: occasionalRowWeight},
	{name: "lapsed", amountMin: lapsedAmountMin, amountRange: lapsedAmountRange, minBack: 0.6, maxBack: 1.0, rowWeight: lapsedRowWeight},
}

// profileFor assigns a behavior profile by the customer's position in the mix.
func profileFor(position, total int) profile {
	frac := float64(position) / float64(total)
	switch {
	case frac < loyalShare:
		return profiles[0]
	case frac < loyalShare+regularShare:
		return profiles[1]
	case frac < loyalShare+regularShare+occasionalShare:
		return profiles[2]
	default:
		return profiles[3]
	}
}

// Generate produces cfg.Rows synthetic transactions across cfg.Customers
// customers. The same seed always yields the same dates and amounts;
// purchase codes are fresh UUIDs and therefore always distinct.
func Generate(ctx context.Context, cfg *Config, stats *Stats) ([]model.Transaction, error) {
	if cfg.Customers <= 0 || cfg.Rows < cfg.Customers {
		return nil, fmt.Errorf("need at least one row per customer (customers=%d rows=%d)", cfg.Customers, cfg.Rows)
	}

	logger.Get().Info(ctx, "generating transactions",
		logger.Int("customers", cfg.Customers),
		logger.Int("rows", cfg.Rows),
		logger.Int("days", cfg.Days),
		logger.Int64("seed", cfg.Seed),
	)

	rng := rand.New(rand.NewSource(cfg.Seed))
	end := time.Now().Truncate(hoursPerDay * time.Hour)
	window := time.Duration(cfg.Days) * hoursPerDay * time.Hour

	// Weighted row distribution: every customer gets at least one row, the
	// remainder goes to the more active profiles.
	rowsPer := make([]int, cfg.Customers)
	weights := make([]int, cfg.Customers)
	totalWeight := 0
	for i := 0; i < cfg.Customers; i++ {
		rowsPer[i] = 1
		weights[i] = profileFor(i, cfg.Customers).rowWeight
		totalWeight += weights[i]
	}
	for extra := cfg.Rows - cfg.Customers; extra > 0; {
		pick := rng.Intn(totalWeight)
		for i, w := range weights {
			pick -= w
			if pick < 0 {
				rowsPer[i]++
				extra--
				break
			}
		}
	}

	bar := progressbar.Default(int64(cfg.Rows))
	txs := make([]model.Transaction, 0, cfg.Rows)
	for i := 0; i < cfg.Customers; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := profileFor(i, cfg.Customers)
		id := strconv.Itoa(i + 1)
		for r := 0; r < rowsPer[i]; r++ {
			txs = append(txs, model.Transaction{
				CustomerID:   id,
				PurchaseDate: purchaseDate(rng, end, window, p),
				PurchaseCode: uuid.New().String(),
				Amount:       round2(p.amountMin + rng.Float64()*p.amountRange),
			})
			_ = bar.Add(1)
		}
	}

	stats.RowsGenerated = len(txs)
	stats.CustomersUsed = cfg.Customers
	for _, tx := range txs {
		stats.TotalValue += tx.Amount
		if stats.EarliestDate.IsZero() || tx.PurchaseDate.Before(stats.EarliestDate) {
			stats.EarliestDate = tx.PurchaseDate
		}
		if tx.PurchaseDate.After(stats.LatestDate) {
			stats.LatestDate = tx.PurchaseDate
		}
	}

	logger.Get().Info(ctx, "generated transactions", logger.Int("count", len(txs)))
	return txs, nil
}

// purchaseDate draws a whole-day date inside the profile's band of the window.
func purchaseDate(rng *rand.Rand, end time.Time, window time.Duration, p profile) time.Time {
	windowDays := int64(window / time.Hour / hoursPerDay)
	minDays := int64(float64(windowDays) * p.minBack)
	maxDays := int64(float64(windowDays) * p.maxBack)
	if maxDays <= minDays {
		maxDays = minDays + 1
	}
	back := minDays + rng.Int63n(maxDays-minDays)
	return end.Add(-time.Duration(back) * hoursPerDay * time.Hour)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
