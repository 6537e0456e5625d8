// Package export serializes segmented tables to downloadable files.
package export

import (
	"github.com/Adelson021/rfv/internal/domain/types"
)

// Download filenames and the XLSX sheet name.
const (
	CSVFilename  = "clientes_segmentados_rfv.csv"
	XLSXFilename = "clientes_segmentados_rfv.xlsx"
	SheetName    = "RFV_Segmentado"
)

// Header is the export column order. It matches the column names of the
// segmented table the dashboard displays.
var Header = []string{
	"ID_cliente",
	"Recencia",
	"Frequencia",
	"Valor",
	"R_quartil",
	"F_quartil",
	"V_quartil",
	"RFV_Score",
	"Ações de Marketing",
}

// cells flattens a segment row into the export column order.
func cells(row types.SegmentRow) []interface{} {
	return []interface{}{
		row.CustomerID,
		row.RecencyDays,
		row.Frequency,
		row.Value,
		row.RLabel,
		row.FLabel,
		row.VLabel,
		row.Score,
		row.Action,
	}
}
