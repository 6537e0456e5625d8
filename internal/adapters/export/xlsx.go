package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Adelson021/rfv/internal/domain/types"
)

// WriteXLSX writes the segmented table as an XLSX workbook with a single
// sheet named RFV_Segmentado.
func WriteXLSX(w io.Writer, rows []types.SegmentRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, name := range Header {
		header[i] = name
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		record := cells(row)
		if err := f.SetSheetRow(SheetName, axis, &record); err != nil {
			return fmt.Errorf("failed to write row for customer %s: %w", row.CustomerID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
