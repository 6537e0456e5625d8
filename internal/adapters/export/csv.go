package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Adelson021/rfv/internal/domain/types"
)

// WriteCSV writes the segmented table as UTF-8 CSV with the export header.
func WriteCSV(w io.Writer, rows []types.SegmentRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, 0, len(Header))
		for _, c := range cells(row) {
			record = append(record, formatCell(c))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row for customer %s: %w", row.CustomerID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func formatCell(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
