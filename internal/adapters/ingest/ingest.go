// Package ingest parses uploaded transaction files into domain rows.
package ingest

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Adelson021/rfv/internal/domain/model"
)

// Required input columns, matched exactly.
const (
	ColCustomerID   = "ID_cliente"
	ColPurchaseDate = "DiaCompra"
	ColPurchaseCode = "CodigoCompra"
	ColAmount       = "ValorTotal"
)

// requiredColumns lists every column an upload must carry.
var requiredColumns = []string{ColCustomerID, ColPurchaseDate, ColPurchaseCode, ColAmount}

// Parse reads a tabular file into transactions, dispatching on the file
// extension. Supported formats are .csv and .xlsx.
func Parse(ctx context.Context, r io.Reader, filename string) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(r)
	case ".xlsx":
		return parseXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// columnIndex maps the required columns to their positions in the header.
// It returns an error naming every missing column at once.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return index, nil
}

// cell returns the trimmed value at column idx, or "" when the row is short.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// emptyRow reports whether every cell in the row is blank.
func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
