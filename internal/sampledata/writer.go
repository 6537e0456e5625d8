package sampledata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Adelson021/rfv/internal/adapters/ingest"
	"github.com/Adelson021/rfv/internal/domain/model"
	"github.com/Adelson021/rfv/pkg/logger"
)

// inputHeader is the upload column contract the generated files follow.
var inputHeader = []string{
	ingest.ColCustomerID,
	ingest.ColPurchaseDate,
	ingest.ColPurchaseCode,
	ingest.ColAmount,
}

const dateLayout = "2006-01-02"

// WriteFile writes the transactions to cfg.OutputFile in cfg.Format.
func WriteFile(ctx context.Context, cfg *Config, txs []model.Transaction) error {
	switch cfg.Format {
	case FormatCSV:
		return writeCSVFile(ctx, cfg.OutputFile, txs)
	case FormatXLSX:
		return writeXLSXFile(ctx, cfg.OutputFile, txs)
	default:
		return fmt.Errorf("unknown output format: %s", cfg.Format)
	}
}

func writeCSVFile(ctx context.Context, path string, txs []model.Transaction) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	if err := writeCSVRows(file, txs); err != nil {
		return err
	}

	logger.Get().Info(ctx, "wrote csv file", logger.String("path", path), logger.Int("rows", len(txs)))
	return nil
}

// writeCSVRows serializes transactions in the upload column contract.
func writeCSVRows(w io.Writer, txs []model.Transaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(inputHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, tx := range txs {
		record := []string{
			tx.CustomerID,
			tx.PurchaseDate.Format(dateLayout),
			tx.PurchaseCode,
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func writeXLSXFile(ctx context.Context, path string, txs []model.Transaction) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(inputHeader))
	for i, name := range inputHeader {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, tx := range txs {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		record := []interface{}{
			tx.CustomerID,
			tx.PurchaseDate.Format(dateLayout),
			tx.PurchaseCode,
			tx.Amount,
		}
		if err := f.SetSheetRow(sheet, axis, &record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	logger.Get().Info(ctx, "wrote xlsx file", logger.String("path", path), logger.Int("rows", len(txs)))
	return nil
}
