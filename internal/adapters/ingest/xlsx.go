package ingest

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Adelson021/rfv/internal/domain/model"
)

// parseXLSX reads transactions from the first sheet of an XLSX workbook.
func parseXLSX(r io.Reader) ([]model.Transaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	index, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var txs []model.Transaction
	for i, row := range rows[1:] {
		rowNum := i + 2
		if emptyRow(row) {
			continue
		}

		tx, err := xlsxRowToTransaction(row, index, rowNum)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	if len(txs) == 0 {
		return nil, ErrEmptyFile
	}
	return txs, nil
}

// xlsxRowToTransaction converts one sheet row. Date cells holding Excel
// serial numbers are converted through the excelize date helpers before
// the textual layouts are tried.
func xlsxRowToTransaction(row []string, index map[string]int, rowNum int) (model.Transaction, error) {
	tx, err := rowToTransaction(row, index, rowNum)
	if err == nil {
		return tx, nil
	}

	raw := cell(row, index[ColPurchaseDate])
	serial, serr := strconv.ParseFloat(raw, 64)
	if serr != nil {
		return model.Transaction{}, err
	}
	date, derr := excelize.ExcelDateToTime(serial, false)
	if derr != nil {
		return model.Transaction{}, err
	}

	patched := make([]string, len(row))
	copy(patched, row)
	patched[index[ColPurchaseDate]] = date.Format("2006-01-02")
	return rowToTransaction(patched, index, rowNum)
}
