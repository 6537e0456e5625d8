package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/Adelson021/rfv/internal/domain/model"
)

// parseCSV reads transactions from a CSV stream. The first record is the
// header; column order is free and extra columns are ignored.
func parseCSV(r io.Reader) ([]model.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var txs []model.Transaction
	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", rowNum, err)
		}
		if emptyRow(row) {
			continue
		}

		tx, err := rowToTransaction(row, index, rowNum)
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

// rowToTransaction converts one data row, reporting the row number and
// column name of the first malformed cell.
func rowToTransaction(row []string, index map[string]int, rowNum int) (model.Transaction, error) {
	id := cell(row, index[ColCustomerID])
	if id == "" {
		return model.Transaction{}, fmt.Errorf("%w: row %d, column %s: empty customer id", ErrBadCell, rowNum, ColCustomerID)
	}

	date, err := parseDate(cell(row, index[ColPurchaseDate]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: row %d, column %s: %v", ErrBadCell, rowNum, ColPurchaseDate, err)
	}

	code := cell(row, index[ColPurchaseCode])
	if code == "" {
		return model.Transaction{}, fmt.Errorf("%w: row %d, column %s: empty purchase code", ErrBadCell, rowNum, ColPurchaseCode)
	}

	amount, err := parseAmount(cell(row, index[ColAmount]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: row %d, column %s: %v", ErrBadCell, rowNum, ColAmount, err)
	}

	return model.Transaction{
		CustomerID:   id,
		PurchaseDate: date,
		PurchaseCode: code,
		Amount:       amount,
	}, nil
}
