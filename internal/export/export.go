// Package export writes the ledger to CSV and Excel files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/wallet/internal/ledger"
	"github.com/cleared-dev/wallet/internal/locale"
	"github.com/cleared-dev/wallet/internal/model"
	"github.com/cleared-dev/wallet/internal/store"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or xlsx)", s)
	}
}

// Header is the CSV header row.
const Header = "date,category,amount,description"

// SheetName is the worksheet holding the records in XLSX exports.
const SheetName = "Ledger"

// Write exports records in format f.
func Write(w io.Writer, f Format, loc locale.Locale, records []model.Transaction) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, loc, records)
	case FormatXLSX:
		return WriteXLSX(w, loc, records)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteCSV writes a header and one row per record.
func WriteCSV(w io.Writer, loc locale.Locale, records []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range records {
		row := []string{
			tx.Date.Format(store.DateFormat),
			loc.CategoryName(tx.Category),
			strconv.FormatInt(tx.Amount, 10),
			tx.Description,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with the records followed by the totals.
func WriteXLSX(w io.Writer, loc locale.Locale, records []model.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := []any{loc.DateLabel, loc.CategoryLabel, loc.AmountLabel, loc.DescriptionLabel}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{tx.Date.Format(store.DateFormat), loc.CategoryName(tx.Category), tx.Amount, tx.Description}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	totals := ledger.ComputeTotals(records)
	summary := []struct {
		label string
		value int64
	}{
		{loc.Income, totals.Income.IntPart()},
		{loc.Expense, totals.Expenses.IntPart()},
		{"Balance", totals.Balance.IntPart()},
	}
	first := len(records) + 3 // leave one empty row after the records
	for i, s := range summary {
		cell, err := excelize.CoordinatesToCellName(2, first+i)
		if err != nil {
			return err
		}
		row := []any{s.label, s.value}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing totals: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
