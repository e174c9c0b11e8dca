// Package nbp reads the National Bank of Poland Table A exchange-rate
// archives and resolves the D-1 rates used for dividend settlement.
//
// NBP publishes one CSV per year ("archiwum_tab_a_2024.csv"): semicolon
// separated, ISO-8859-1 encoded, decimal commas, a "data" column keyed
// YYYYMMDD, and one column per quotation like "1USD" or "100HUF" where the
// leading count is the number of units the rate buys.
package nbp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/mwronski/belka/date"
)

// ArchiveGlob matches the yearly Table A archive files inside a data directory.
const ArchiveGlob = "archiwum_tab_a_*.csv"

// maxLookback bounds how many business days a rate lookup walks backwards
// before giving up; long market holidays in Poland stay under two weeks.
const maxLookback = 10

var (
	reDayKey     = regexp.MustCompile(`^\d{8}$`)
	reRateColumn = regexp.MustCompile(`^(\d+)([A-Z]{3})$`)
)

// Table holds quotations indexed by day key and currency, normalized to the
// price of one unit of the foreign currency in PLN.
type Table struct {
	rates map[string]map[string]decimal.Decimal // YYYYMMDD -> CCY -> rate
}

// NewTable returns an empty quotation table.
func NewTable() *Table {
	return &Table{rates: make(map[string]map[string]decimal.Decimal)}
}

// Len returns the number of quotation days in the table.
func (t *Table) Len() int { return len(t.rates) }

// LoadArchives loads every archiwum_tab_a_*.csv file found in dir into a
// single table. At least one archive file must be present.
func LoadArchives(dir string) (*Table, error) {
	paths, err := filepath.Glob(filepath.Join(dir, ArchiveGlob))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no NBP archive files (%s) in %q: run 'fetch-nbp' first", ArchiveGlob, dir)
	}
	sort.Strings(paths)

	table := NewTable()
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening NBP archive %q: %w", path, err)
		}
		err = table.ReadArchive(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing NBP archive %q: %w", path, err)
		}
	}
	return table, nil
}

// ReadArchive parses one yearly archive CSV and merges its quotations into
// the table. Later reads of the same day overwrite earlier ones.
func (t *Table) ReadArchive(r io.Reader) error {
	raw, err := io.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(r))
	if err != nil {
		return err
	}

	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	if len(lines) == 0 {
		return fmt.Errorf("empty archive")
	}

	header := strings.Split(lines[0], ";")
	if len(header) == 0 || strings.TrimSpace(header[0]) != "data" {
		return fmt.Errorf("unexpected archive header %q, want first column \"data\"", lines[0])
	}

	// Column -> (currency, unit count). Non-quotation columns (table number,
	// trailing fillers) are left nil and skipped.
	type column struct {
		currency string
		units    decimal.Decimal
	}
	columns := make([]*column, len(header))
	for i, name := range header[1:] {
		m := reRateColumn.FindStringSubmatch(strings.TrimSpace(name))
		if m == nil {
			continue
		}
		units, err := decimal.NewFromString(m[1])
		if err != nil || units.IsZero() {
			continue
		}
		columns[i+1] = &column{currency: m[2], units: units}
	}

	for _, line := range lines[1:] {
		fields := strings.Split(line, ";")
		day := strings.TrimSpace(fields[0])
		// The archive carries trailer rows (counts, column numbers) whose
		// first field is not a day key.
		if !reDayKey.MatchString(day) {
			continue
		}
		quotes, ok := t.rates[day]
		if !ok {
			quotes = make(map[string]decimal.Decimal)
			t.rates[day] = quotes
		}
		for i, field := range fields {
			if i >= len(columns) || columns[i] == nil {
				continue
			}
			field = strings.TrimSpace(strings.ReplaceAll(field, ",", "."))
			if field == "" {
				continue
			}
			value, err := decimal.NewFromString(field)
			if err != nil {
				continue
			}
			// Normalize multi-unit quotations (100HUF) to a per-unit rate.
			quotes[columns[i].currency] = value.Div(columns[i].units)
		}
	}
	return nil
}

// Rate returns the quotation for one unit of currency on exactly the given
// day. PLN is the base currency and always quotes at 1.
func (t *Table) Rate(currency string, on date.Date) (decimal.Decimal, bool) {
	if currency == "PLN" {
		return decimal.NewFromInt(1), true
	}
	rate, ok := t.rates[on.ArchiveKey()][currency]
	return rate, ok
}

// RateD1 returns the quotation for the given day, walking back through
// earlier business days when the day has no quotation (market holidays).
// It reports the day the returned rate was actually quoted on.
func (t *Table) RateD1(currency string, on date.Date) (decimal.Decimal, date.Date, error) {
	if currency == "PLN" {
		return decimal.NewFromInt(1), on, nil
	}
	day := on
	for i := 0; i < maxLookback; i++ {
		if rate, ok := t.Rate(currency, day); ok {
			return rate, day, nil
		}
		day = day.PreviousBusinessDay()
	}
	return decimal.Decimal{}, date.Date{}, fmt.Errorf(
		"no %s rate on %s or the %d business days before it: missing archiwum_tab_a_%d.csv?",
		currency, on, maxLookback, on.Year())
}
