package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. ISO forms come first, then day-first
// Brazilian forms before month-first ones, matching the data source.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"01/02/2006",
}

// parseDate parses a purchase date through the ordered layout list.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// parseAmount parses a purchase amount. Besides plain decimals it accepts
// lightly formatted values: currency prefix, thousands separators, and a
// comma decimal separator.
func parseAmount(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "R$")
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", "")

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		// The rightmost separator is the decimal one.
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q", s)
	}
	return v, nil
}
