// Package xtb imports XTB brokerage statement exports. Statements come as an
// XLSX workbook whose "CASH OPERATION HISTORY" sheet carries a few banner
// rows, the account currency in a fixed cell, a header row, the operations,
// and a trailing "Total" row. Column headers are localized: the broker ships
// Polish or English statements depending on the account settings.
package xtb

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mwronski/belka"
	"github.com/mwronski/belka/date"
)

// SheetName is the worksheet holding the cash operations.
const SheetName = "CASH OPERATION HISTORY"

// CurrencyCell is the fixed cell holding the account currency of the export.
const CurrencyCell = "F6"

// Language identifies the localization of a statement's column headers.
type Language string

const (
	Polish  Language = "PL"
	English Language = "EN"
)

// column headers per language, in canonical order:
// timestamp, ticker, comment, amount, type.
var headerNames = map[Language][5]string{
	Polish:  {"Czas", "Symbol", "Komentarz", "Kwota", "Typ"},
	English: {"Time", "Symbol", "Comment", "Amount", "Type"},
}

// ImportFile opens an XLSX statement export and parses it.
func ImportFile(path string) (*belka.Statement, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement %q: %w", path, err)
	}
	defer f.Close()
	st, err := Import(f)
	if err != nil {
		return nil, fmt.Errorf("parsing statement %q: %w", path, err)
	}
	return st, nil
}

// Import parses an open statement workbook.
func Import(f *excelize.File) (*belka.Statement, error) {
	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet %q not found: %w", SheetName, err)
	}

	currency, err := f.GetCellValue(SheetName, CurrencyCell)
	if err != nil {
		return nil, err
	}
	currency = strings.TrimSpace(currency)

	headerIndex := findHeaderRow(rows)
	if headerIndex < 0 {
		return nil, fmt.Errorf("no header row (cell %q) found in sheet %q", "ID", SheetName)
	}

	cols, err := mapColumns(rows[headerIndex])
	if err != nil {
		return nil, err
	}

	st := &belka.Statement{Currency: currency}
	for i, row := range rows[headerIndex+1:] {
		if isEmptyRow(row) || isTotalRow(row) {
			continue
		}
		op, err := parseOperation(row, cols)
		if err != nil {
			// +2: 1-based sheet rows, plus the header row itself.
			return nil, fmt.Errorf("row %d: %w", headerIndex+i+2, err)
		}
		st.Operations = append(st.Operations, op)
	}
	return st, nil
}

// Detect returns the statement language from a header row, defaulting to
// English when no Polish header is present.
func Detect(header []string) Language {
	for _, cell := range header {
		switch strings.TrimSpace(cell) {
		case "Czas", "Komentarz", "Kwota", "Typ":
			return Polish
		}
	}
	return English
}

// findHeaderRow locates the row holding the "ID" column header. Statements
// carry banner rows above it whose shape varies between export versions.
func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) == "ID" {
				return i
			}
		}
	}
	return -1
}

// columns maps canonical fields to their cell index in a statement row.
type columns struct {
	timestamp, ticker, comment, amount, typ int
}

func mapColumns(header []string) (columns, error) {
	names := headerNames[Detect(header)]

	index := make(map[string]int, len(header))
	for i, cell := range header {
		index[strings.TrimSpace(cell)] = i
	}

	var cols columns
	fields := []*int{&cols.timestamp, &cols.ticker, &cols.comment, &cols.amount, &cols.typ}
	for i, name := range names {
		pos, ok := index[name]
		if !ok {
			return columns{}, fmt.Errorf("statement header is missing the %q column", name)
		}
		*fields[i] = pos
	}
	return cols, nil
}

func parseOperation(row []string, cols columns) (belka.CashOperation, error) {
	var op belka.CashOperation

	on, err := date.ParseStatement(cell(row, cols.timestamp))
	if err != nil {
		return op, err
	}
	amountStr := strings.ReplaceAll(cell(row, cols.amount), ",", ".")
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return op, fmt.Errorf("invalid amount %q: %w", cell(row, cols.amount), err)
	}

	op.Date = on
	op.Ticker = cell(row, cols.ticker)
	op.Comment = cell(row, cols.comment)
	op.Type = cell(row, cols.typ)
	op.Amount = amount
	return op, nil
}

// cell returns the trimmed cell at index i; excelize trims trailing empty
// cells from rows, so short rows read as empty strings.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// isTotalRow reports whether the row is the trailing summary row.
func isTotalRow(row []string) bool {
	for _, c := range row {
		if strings.Contains(c, "Total") {
			return true
		}
	}
	return false
}
