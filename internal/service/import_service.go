package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"stockledger/internal/model"
	"stockledger/internal/repository/workbook"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Layout of the monthly stock sheets operators upload.
const (
	importHeaderRows  = 4
	importNameCol     = 1
	importUOMCol      = 2
	importOpeningCol  = 3
	importFirstDayCol = 4

	ExportSheet = "Inventory"
)

// SkippedRow is a sheet row that was not registered, with the reason.
type SkippedRow struct {
	Row    int    `json:"row"`
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Registered int          `json:"registered"`
	Skipped    []SkippedRow `json:"skipped"`
	Receipts   int          `json:"receipts"`
	Coerced    int          `json:"coerced"`
}

type ImportService interface {
	Import(ctx context.Context, filename string, r io.Reader) (ImportResult, error)
	Export(ctx context.Context) ([]byte, error)
}

type importService struct {
	stock  StockService
	logger logrus.FieldLogger
}

func NewImportService(stock StockService, logger logrus.FieldLogger) ImportService {
	return &importService{
		stock:  stock,
		logger: logger.WithFields(logrus.Fields{"module": "import", "location": stock.Location()}),
	}
}

// ReadSheetRows returns the rows of the first sheet of an xlsx upload, or of a csv upload.
func ReadSheetRows(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable workbook: %v", ErrValidation, err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrValidation)
		}
		return f.GetRows(sheets[0])
	case ".csv":
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable csv: %v", ErrValidation, err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: only .xlsx and .csv uploads are supported", ErrValidation)
	}
}

func cell(row []string, col int) string {
	if col < len(row) {
		return strings.TrimSpace(row[col])
	}
	return ""
}

// Import registers every named row and books its non-zero day cells as Additions.
// Rows RegisterItem rejects, such as duplicates, are listed in Skipped with the reason.
func (s *importService) Import(ctx context.Context, filename string, r io.Reader) (ImportResult, error) {
	var result ImportResult
	rows, err := ReadSheetRows(filename, r)
	if err != nil {
		return result, err
	}
	if len(rows) <= importHeaderRows {
		return result, nil
	}

	coerce := func(rowNo, col int, raw, msg string) {
		result.Coerced++
		s.logger.WithFields(logrus.Fields{"row": rowNo, "column": col + 1, "value": raw}).Warn(msg)
	}
	quantity := func(rowNo int, col int, raw string) decimal.Decimal {
		qty, coerced := model.ParseQuantity(raw)
		if coerced {
			coerce(rowNo, col, raw, "unparseable quantity read as 0")
			return qty
		}
		if rounded := qty.Round(QuantityScale); !rounded.Equal(qty) {
			coerce(rowNo, col, raw, "quantity rounded to stored precision")
			qty = rounded
		}
		return qty
	}

	for i, row := range rows[importHeaderRows:] {
		rowNo := i + importHeaderRows + 1
		name := cell(row, importNameCol)
		if name == "" {
			continue
		}

		opening := quantity(rowNo, importOpeningCol, cell(row, importOpeningCol))
		if opening.IsNegative() {
			coerce(rowNo, importOpeningCol, cell(row, importOpeningCol), "negative opening stock read as 0")
			opening = decimal.Zero
		}
		_, err := s.stock.RegisterItem(ctx, RegisterItemRequest{
			ProductName:  name,
			UOM:          cell(row, importUOMCol),
			OpeningStock: opening,
		})
		if errors.Is(err, ErrValidation) {
			result.Skipped = append(result.Skipped, SkippedRow{Row: rowNo, Item: name, Reason: err.Error()})
			continue
		}
		if err != nil {
			return result, fmt.Errorf("row %d: %w", rowNo, err)
		}
		result.Registered++

		for day := 1; day <= model.DaysInMonth; day++ {
			col := importFirstDayCol + day - 1
			qty := quantity(rowNo, col, cell(row, col))
			if qty.IsZero() {
				continue
			}
			if _, _, err := s.stock.ApplyDelta(ctx, Delta{
				Item:   name,
				Day:    day,
				Qty:    qty,
				Type:   model.EntryAddition,
				Target: model.TargetReceipt,
			}); err != nil {
				return result, fmt.Errorf("row %d day %d: %w", rowNo, day, err)
			}
			result.Receipts++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"file":       filename,
		"registered": result.Registered,
		"skipped":    len(result.Skipped),
		"coerced":    result.Coerced,
	}).Info("sheet imported")
	return result, nil
}

func (s *importService) Export(ctx context.Context) ([]byte, error) {
	items, err := s.stock.Items(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(workbook.InventoryColumns))
	for i, h := range workbook.InventoryColumns {
		header[i] = h
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, item := range items {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := workbook.InventoryRow(item)
		if err := f.SetSheetRow(ExportSheet, axis, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
