// Package workbook stores every table as a sheet of a single xlsx file, the
// layout operators already keep their monthly stock sheets in.
package workbook

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"stockledger/internal/model"
	"stockledger/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	ordersSheet    = "orders"
	directorySheet = "directory"
	maxSheetName   = 31
)

var (
	InventoryColumns = inventoryHeader()
	LedgerColumns    = []string{"id", "timestamp", "item", "day", "qty", "type", "target", "reverses", "undone"}
	OrderColumns     = []string{"LineID", "OrderID", "Date", "From", "Item", "Qty", "Status", "FollowUp"}
	DirectoryColumns = []string{"Product Name", "Category", "Supplier", "Contact", "Email", "Min Stock", "Price"}
)

func inventoryHeader() []string {
	cols := []string{"Product Name", "Category", "UOM", "Opening Stock"}
	for d := 1; d <= model.DaysInMonth; d++ {
		cols = append(cols, strconv.Itoa(d))
	}
	return append(cols, "Total Received", "Consumption", "Closing Stock", "Physical Count", "Variance")
}

// File is a workbook on disk. Each call opens, edits and saves the whole file
// under a mutex, so one File value must be shared by everything in a process.
type File struct {
	path   string
	logger logrus.FieldLogger
	mu     sync.Mutex
}

// NewStore returns a Store whose tables live in the workbook at path.
func NewStore(path string, logger logrus.FieldLogger) repository.Store {
	f := &File{path: path, logger: logger.WithField("module", "workbook")}
	return repository.Store{
		Inventory: inventorySheet{f},
		Ledger:    ledgerSheet{f},
		Orders:    orderSheet{f},
		Directory: directoryTable{f},
		Tx:        repository.NewPassThroughTxManager(),
	}
}

// SheetName maps a table name to a valid Excel sheet name.
func SheetName(prefix, location string) string {
	name := prefix + "_" + location
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	if len([]rune(name)) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	return name
}

func (f *File) open() (*excelize.File, error) {
	wb, err := excelize.OpenFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return excelize.NewFile(), nil
	}
	return wb, err
}

// readRows returns the data rows of a sheet keyed by header name.
func (f *File) readRows(sheet string) ([]map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	wb, err := f.open()
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	if idx, _ := wb.GetSheetIndex(sheet); idx < 0 {
		return nil, nil
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		empty := true
		for col, name := range header {
			if col < len(row) {
				rec[strings.TrimSpace(name)] = row[col]
				if strings.TrimSpace(row[col]) != "" {
					empty = false
				}
			}
		}
		if !empty {
			out = append(out, rec)
		}
	}
	return out, nil
}

// writeRows replaces a sheet with header plus rows.
func (f *File) writeRows(sheet string, header []string, rows [][]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	wb, err := f.open()
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	if idx, _ := wb.GetSheetIndex(sheet); idx >= 0 {
		// excelize keeps the last remaining sheet, so make sure it is not ours.
		if wb.SheetCount == 1 {
			if _, err := wb.NewSheet("Sheet1"); err != nil {
				return err
			}
		}
		if err := wb.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("clear sheet %s: %w", sheet, err)
		}
	}
	if _, err := wb.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	head := make([]interface{}, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := wb.SetSheetRow(sheet, "A1", &head); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := wb.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return wb.SaveAs(f.path)
}

func (f *File) quantity(sheet, column, raw string) decimal.Decimal {
	qty, coerced := model.ParseQuantity(raw)
	if coerced {
		f.logger.WithFields(logrus.Fields{
			"sheet":  sheet,
			"column": column,
			"value":  raw,
		}).Warn("unparseable quantity read as 0")
	}
	return qty
}

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

type inventorySheet struct{ f *File }

func (r inventorySheet) Load(_ context.Context, location string) ([]model.Item, error) {
	sheet := SheetName("inv", location)
	rows, err := r.f.readRows(sheet)
	if err != nil {
		return nil, err
	}

	items := make([]model.Item, 0, len(rows))
	for idx, rec := range rows {
		name := strings.TrimSpace(rec["Product Name"])
		if name == "" {
			continue
		}
		item := model.Item{
			Location:     location,
			ProductName:  name,
			Category:     rec["Category"],
			UOM:          rec["UOM"],
			OpeningStock: r.f.quantity(sheet, "Opening Stock", rec["Opening Stock"]),
			Consumption:  r.f.quantity(sheet, "Consumption", rec["Consumption"]),
			Position:     idx,
		}
		for d := 1; d <= model.DaysInMonth; d++ {
			col := strconv.Itoa(d)
			item.Receipts[d-1] = r.f.quantity(sheet, col, rec[col])
		}
		if raw := strings.TrimSpace(rec["Physical Count"]); raw != "" {
			if pc, coerced := model.ParseQuantity(raw); !coerced {
				item.PhysicalCount = decimal.NewNullDecimal(pc)
			}
		}
		item.Recalc()
		items = append(items, item)
	}
	return items, nil
}

func (r inventorySheet) Replace(_ context.Context, location string, items []model.Item) error {
	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		rows = append(rows, InventoryRow(item))
	}
	return r.f.writeRows(SheetName("inv", location), InventoryColumns, rows)
}

// InventoryRow lays an item out in InventoryColumns order.
func InventoryRow(item model.Item) []interface{} {
	row := []interface{}{item.ProductName, item.Category, item.UOM, num(item.OpeningStock)}
	for _, v := range item.Receipts {
		row = append(row, num(v))
	}
	var physical interface{} = ""
	if item.PhysicalCount.Valid {
		physical = num(item.PhysicalCount.Decimal)
	}
	return append(row, num(item.TotalReceived), num(item.Consumption), num(item.ClosingStock), physical, num(item.Variance))
}

type ledgerSheet struct{ f *File }

func (r ledgerSheet) Load(_ context.Context, location string) ([]model.LedgerEntry, error) {
	sheet := SheetName("ledger", location)
	rows, err := r.f.readRows(sheet)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LedgerEntry, 0, len(rows))
	for idx, rec := range rows {
		ts, _ := time.Parse(time.RFC3339, rec["timestamp"])
		day, _ := strconv.Atoi(strings.TrimSpace(rec["day"]))
		undone, _ := strconv.ParseBool(strings.TrimSpace(rec["undone"]))
		target := model.EntryTarget(rec["target"])
		if !target.Valid() {
			target = model.TargetReceipt
		}
		entries = append(entries, model.LedgerEntry{
			ID:        rec["id"],
			Location:  location,
			Timestamp: ts,
			Item:      rec["item"],
			Day:       day,
			Qty:       r.f.quantity(sheet, "qty", rec["qty"]),
			Type:      rec["type"],
			Target:    target,
			Reverses:  rec["reverses"],
			Undone:    undone,
			Seq:       int64(len(rows) - idx),
		})
	}
	return entries, nil
}

func (r ledgerSheet) Replace(_ context.Context, location string, entries []model.LedgerEntry) error {
	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []interface{}{
			e.ID, e.Timestamp.Format(time.RFC3339), e.Item, e.Day, num(e.Qty),
			e.Type, string(e.Target), e.Reverses, e.Undone,
		})
	}
	return r.f.writeRows(SheetName("ledger", location), LedgerColumns, rows)
}

type orderSheet struct{ f *File }

func (r orderSheet) Load(_ context.Context) ([]model.OrderLine, error) {
	rows, err := r.f.readRows(ordersSheet)
	if err != nil {
		return nil, err
	}

	lines := make([]model.OrderLine, 0, len(rows))
	for idx, rec := range rows {
		followUp, _ := strconv.ParseBool(strings.TrimSpace(rec["FollowUp"]))
		lines = append(lines, model.OrderLine{
			LineID:   rec["LineID"],
			OrderID:  rec["OrderID"],
			Date:     rec["Date"],
			From:     rec["From"],
			Item:     rec["Item"],
			Qty:      r.f.quantity(ordersSheet, "Qty", rec["Qty"]),
			Status:   model.OrderStatus(rec["Status"]),
			FollowUp: followUp,
			Seq:      int64(idx),
		})
	}
	return lines, nil
}

func (r orderSheet) Replace(_ context.Context, lines []model.OrderLine) error {
	rows := make([][]interface{}, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []interface{}{
			l.LineID, l.OrderID, l.Date, l.From, l.Item, num(l.Qty), string(l.Status), l.FollowUp,
		})
	}
	return r.f.writeRows(ordersSheet, OrderColumns, rows)
}

type directoryTable struct{ f *File }

func (r directoryTable) Load(_ context.Context) ([]model.DirectoryEntry, error) {
	rows, err := r.f.readRows(directorySheet)
	if err != nil {
		return nil, err
	}

	entries := make([]model.DirectoryEntry, 0, len(rows))
	for _, rec := range rows {
		entries = append(entries, model.DirectoryEntry{
			ProductName: rec["Product Name"],
			Category:    rec["Category"],
			Supplier:    rec["Supplier"],
			Contact:     rec["Contact"],
			Email:       rec["Email"],
			MinStock:    r.f.quantity(directorySheet, "Min Stock", rec["Min Stock"]),
			Price:       r.f.quantity(directorySheet, "Price", rec["Price"]),
		})
	}
	return entries, nil
}

func (r directoryTable) Replace(_ context.Context, entries []model.DirectoryEntry) error {
	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []interface{}{
			e.ProductName, e.Category, e.Supplier, e.Contact, e.Email, num(e.MinStock), num(e.Price),
		})
	}
	return r.f.writeRows(directorySheet, DirectoryColumns, rows)
}
