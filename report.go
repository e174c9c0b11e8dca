package belka

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mwronski/belka/date"
)

// Header is the column order of the spreadsheet export.
var Header = []string{
	"Date",
	"Ticker",
	"Shares",
	"Net Dividend",
	"Tax Collected Amount",
	"Tax Collected %",
	"Date D-1",
	"Exchange Rate D-1",
	"Tax Amount PLN",
}

// Row is one settled dividend position. Zero values render as the "-"
// sentinel: a zero DateD1 means the withholding already covers the Belka
// rate, a zero RateD1 means either that or a PLN dividend.
type Row struct {
	Date         date.Date
	Ticker       string
	Shares       int64
	Net          Money
	TaxCollected Money
	WHTRate      decimal.Decimal
	DateD1       date.Date
	RateD1       decimal.Decimal
	TaxPLN       decimal.Decimal
}

// WHTPercent renders the withholding rate as "15%", or "-" when none.
func (r Row) WHTPercent() string {
	if r.WHTRate.IsZero() {
		return Dash
	}
	return r.WHTRate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// DateD1String renders the D-1 date, or "-" when no rate lookup was needed.
func (r Row) DateD1String() string {
	if r.DateD1.IsZero() {
		return Dash
	}
	return r.DateD1.String()
}

// RateD1String renders the D-1 exchange rate as "4.1512 PLN", or "-" for PLN
// dividends and positions already settled at source.
func (r Row) RateD1String() string {
	if r.RateD1.IsZero() {
		return Dash
	}
	return r.RateD1.StringFixed(4) + " " + PLN
}

// TaxPLNString renders the residual Polish tax, or "-" when none is due.
func (r Row) TaxPLNString() string {
	if r.TaxPLN.IsZero() {
		return Dash
	}
	return r.TaxPLN.StringFixed(2)
}

// Fields returns the row in export column order.
func (r Row) Fields() []string {
	return []string{
		r.Date.String(),
		r.Ticker,
		strconv.FormatInt(r.Shares, 10),
		r.Net.String(),
		r.TaxCollected.String(),
		r.WHTPercent(),
		r.DateD1String(),
		r.RateD1String(),
		r.TaxPLNString(),
	}
}

// Report is the settled statement: one row per dividend position.
type Report struct {
	StatementCurrency string
	BelkaRate         decimal.Decimal
	Rows              []Row
}

// TotalPLN sums the residual Polish tax over all positions.
func (r *Report) TotalPLN() decimal.Decimal {
	total := decimal.Zero
	for _, row := range r.Rows {
		total = total.Add(row.TaxPLN)
	}
	return total.Round(2)
}

// WriteTSV writes the report as a tab-separated table with a header row,
// the format Google Sheets pastes cleanly.
func (r *Report) WriteTSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range r.Rows {
		if err := cw.Write(row.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes the report to path, creating parent directories.
func (r *Report) ExportFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory %q: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file %q: %w", path, err)
	}
	defer f.Close()
	if err := r.WriteTSV(f); err != nil {
		return fmt.Errorf("writing export file %q: %w", path, err)
	}
	return nil
}
