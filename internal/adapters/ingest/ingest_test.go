package ingest_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	ingest "github.com/Adelson021/rfv/internal/adapters/ingest"
	. "github.com/smartystreets/goconvey/convey"
)

const validCSV = `ID_cliente,DiaCompra,CodigoCompra,ValorTotal
1,2026-01-10,ord-1,100.50
1,2026-01-15,ord-2,49.50
2,15/01/2026,ord-3,200
`

func TestParseCSV(t *testing.T) {
	Convey("Given CSV uploads", t, func() {
		ctx := context.Background()

		Convey("When parsing a well-formed file", func() {
			txs, err := ingest.Parse(ctx, strings.NewReader(validCSV), "upload.csv")

			Convey("Then every row should be parsed", func() {
				So(err, ShouldBeNil)
				So(txs, ShouldHaveLength, 3)
				So(txs[0].CustomerID, ShouldEqual, "1")
				So(txs[0].PurchaseCode, ShouldEqual, "ord-1")
				So(txs[0].Amount, ShouldEqual, 100.50)
				So(txs[0].PurchaseDate.Equal(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})

			Convey("Then day-first dates should parse too", func() {
				So(txs[2].PurchaseDate.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})
		})

		Convey("When the columns are in a different order with extras", func() {
			data := "Loja,ValorTotal,ID_cliente,CodigoCompra,DiaCompra\nSP,10,7,ord-9,2026-02-01\n"
			txs, err := ingest.Parse(ctx, strings.NewReader(data), "upload.csv")

			Convey("Then parsing should still work by header name", func() {
				So(err, ShouldBeNil)
				So(txs, ShouldHaveLength, 1)
				So(txs[0].CustomerID, ShouldEqual, "7")
				So(txs[0].Amount, ShouldEqual, 10)
			})
		})

		Convey("When required columns are missing", func() {
			data := "ID_cliente,Valor\n1,10\n"
			_, err := ingest.Parse(ctx, strings.NewReader(data), "upload.csv")

			Convey("Then the error should name every missing column", func() {
				So(err, ShouldWrap, ingest.ErrMissingColumns)
				So(err.Error(), ShouldContainSubstring, "DiaCompra")
				So(err.Error(), ShouldContainSubstring, "CodigoCompra")
				So(err.Error(), ShouldContainSubstring, "ValorTotal")
			})
		})

		Convey("When the file is empty", func() {
			_, err := ingest.Parse(ctx, strings.NewReader(""), "upload.csv")

			Convey("Then it should return ErrEmptyFile", func() {
				So(err, ShouldEqual, ingest.ErrEmptyFile)
			})
		})

		Convey("When the file has a header but no data rows", func() {
			data := "ID_cliente,DiaCompra,CodigoCompra,ValorTotal\n"
			_, err := ingest.Parse(ctx, strings.NewReader(data), "upload.csv")

			Convey("Then it should return ErrEmptyFile", func() {
				So(err, ShouldEqual, ingest.ErrEmptyFile)
			})
		})

		Convey("When a date cell is malformed", func() {
			data := "ID_cliente,DiaCompra,CodigoCompra,ValorTotal\n1,not-a-date,ord-1,10\n"
			_, err := ingest.Parse(ctx, strings.NewReader(data), "upload.csv")

			Convey("Then the error should point at the row and column", func() {
				So(err, ShouldWrap, ingest.ErrBadCell)
				So(err.Error(), ShouldContainSubstring, "row 2")
				So(err.Error(), ShouldContainSubstring, "DiaCompra")
			})
		})

		Convey("When a customer id is empty", func() {
			data := "ID_cliente,DiaCompra,CodigoCompra,ValorTotal\n,2026-01-10,ord-1,10\n"
			_, err := ingest.Parse(ctx, strings.NewReader(data), "upload.csv")

			Convey("Then it should fail on the id cell", func() {
				So(err, ShouldWrap, ingest.ErrBadCell)
				So(err.Error(), ShouldContainSubstring, "ID_cliente")
			})
		})

		Convey("When blank rows appear between data rows", func() {
			data := "ID_cliente,DiaCompra,CodigoCompra,ValorTotal\n1,2026-01-10,ord-1,10\n,,,\n2,2026-01-11,ord-2,20\n"
			txs, err := ingest.Parse(ctx, strings.NewReader(data), "upload.csv")

			Convey("Then blank rows should be skipped", func() {
				So(err, ShouldBeNil)
				So(txs, ShouldHaveLength, 2)
			})
		})

		Convey("When amounts use Brazilian formatting", func() {
			data := "ID_cliente,DiaCompra,CodigoCompra,ValorTotal\n" +
				"1,2026-01-10,ord-1,\"R$ 1.234,56\"\n" +
				"2,2026-01-10,ord-2,\"1234,56\"\n" +
				"3,2026-01-10,ord-3,\"1,234.56\"\n" +
				"4,2026-01-10,ord-4,99\n"
			txs, err := ingest.Parse(ctx, strings.NewReader(data), "upload.csv")

			Convey("Then all variants should parse to the same value", func() {
				So(err, ShouldBeNil)
				So(txs[0].Amount, ShouldEqual, 1234.56)
				So(txs[1].Amount, ShouldEqual, 1234.56)
				So(txs[2].Amount, ShouldEqual, 1234.56)
				So(txs[3].Amount, ShouldEqual, 99)
			})
		})

		Convey("When an amount cell is malformed", func() {
			data := "ID_cliente,DiaCompra,CodigoCompra,ValorTotal\n1,2026-01-10,ord-1,abc\n"
			_, err := ingest.Parse(ctx, strings.NewReader(data), "upload.csv")

			Convey("Then it should fail on the amount cell", func() {
				So(err, ShouldWrap, ingest.ErrBadCell)
				So(err.Error(), ShouldContainSubstring, "ValorTotal")
			})
		})
	})
}

func TestParseXLSX(t *testing.T) {
	Convey("Given XLSX uploads", t, func() {
		ctx := context.Background()

		buildWorkbook := func(rows [][]interface{}) *bytes.Buffer {
			f := excelize.NewFile()
			sheet := f.GetSheetName(0)
			for i, row := range rows {
				axis, err := excelize.CoordinatesToCellName(1, i+1)
				So(err, ShouldBeNil)
				So(f.SetSheetRow(sheet, axis, &row), ShouldBeNil)
			}
			buf, err := f.WriteToBuffer()
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
			return buf
		}

		Convey("When parsing a well-formed workbook", func() {
			buf := buildWorkbook([][]interface{}{
				{"ID_cliente", "DiaCompra", "CodigoCompra", "ValorTotal"},
				{"1", "2026-01-10", "ord-1", 100.5},
				{"2", "2026-01-12", "ord-2", 49.5},
			})
			txs, err := ingest.Parse(ctx, buf, "upload.xlsx")

			Convey("Then rows should be parsed from the first sheet", func() {
				So(err, ShouldBeNil)
				So(txs, ShouldHaveLength, 2)
				So(txs[0].CustomerID, ShouldEqual, "1")
				So(txs[0].Amount, ShouldEqual, 100.5)
				So(txs[1].PurchaseDate.Equal(time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})
		})

		Convey("When the workbook header is incomplete", func() {
			buf := buildWorkbook([][]interface{}{
				{"ID_cliente", "ValorTotal"},
				{"1", 10},
			})
			_, err := ingest.Parse(ctx, buf, "upload.xlsx")

			Convey("Then it should report the missing columns", func() {
				So(err, ShouldWrap, ingest.ErrMissingColumns)
			})
		})

		Convey("When the workbook has no data rows", func() {
			buf := buildWorkbook([][]interface{}{
				{"ID_cliente", "DiaCompra", "CodigoCompra", "ValorTotal"},
			})
			_, err := ingest.Parse(ctx, buf, "upload.xlsx")

			Convey("Then it should return ErrEmptyFile", func() {
				So(err, ShouldEqual, ingest.ErrEmptyFile)
			})
		})

		Convey("When the stream is not a workbook", func() {
			_, err := ingest.Parse(ctx, strings.NewReader("not an xlsx"), "upload.xlsx")

			Convey("Then it should fail to open", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestParseDispatch(t *testing.T) {
	Convey("Given the extension dispatcher", t, func() {
		Convey("When the extension is unsupported", func() {
			_, err := ingest.Parse(context.Background(), strings.NewReader(validCSV), "upload.txt")

			Convey("Then it should return ErrUnsupportedFormat", func() {
				So(err, ShouldWrap, ingest.ErrUnsupportedFormat)
			})
		})

		Convey("When the extension is upper-case", func() {
			txs, err := ingest.Parse(context.Background(), strings.NewReader(validCSV), "UPLOAD.CSV")

			Convey("Then dispatch should be case-insensitive", func() {
				So(err, ShouldBeNil)
				So(txs, ShouldHaveLength, 3)
			})
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := ingest.Parse(ctx, strings.NewReader(validCSV), "upload.csv")

			Convey("Then it should return the context error", func() {
				So(err, ShouldEqual, context.Canceled)
			})
		})
	})
}
