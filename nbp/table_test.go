package nbp

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mwronski/belka/date"
)

// sampleArchive mimics the NBP Table A yearly CSV: semicolon separated,
// decimal commas, multi-unit columns, and trailer rows below the data.
const sampleArchive = `data;1USD;1EUR;100HUF;nr tabeli
20250312;3,8912;4,2150;1,0512;050/A/NBP/2025
20250313;3,9000;4,2200;1,0600;051/A/NBP/2025
20250317;3,9500;4,2300;1,0700;052/A/NBP/2025

;;;;
liczba;3;3;3;
`

func loadSample(t *testing.T) *Table {
	t.Helper()
	table := NewTable()
	if err := table.ReadArchive(strings.NewReader(sampleArchive)); err != nil {
		t.Fatal(err)
	}
	return table
}

func TestReadArchive(t *testing.T) {
	table := loadSample(t)
	if table.Len() != 3 {
		t.Fatalf("got %d quotation days, want 3", table.Len())
	}

	rate, ok := table.Rate("USD", date.MustParse("2025-3-13"))
	if !ok {
		t.Fatal("no USD rate on 2025-03-13")
	}
	if want := decimal.RequireFromString("3.9000"); !rate.Equal(want) {
		t.Errorf("USD rate = %s, want %s", rate, want)
	}
}

func TestReadArchiveNormalizesUnits(t *testing.T) {
	// 100HUF quoted at 1.0600 means 0.0106 PLN per forint.
	table := loadSample(t)
	rate, ok := table.Rate("HUF", date.MustParse("2025-3-13"))
	if !ok {
		t.Fatal("no HUF rate")
	}
	if want := decimal.RequireFromString("0.0106"); !rate.Equal(want) {
		t.Errorf("HUF rate = %s, want %s", rate, want)
	}
}

func TestReadArchiveRejectsBadHeader(t *testing.T) {
	table := NewTable()
	if err := table.ReadArchive(strings.NewReader("id;1USD\n20250313;3,90\n")); err == nil {
		t.Fatal("expected an error for a header without a data column")
	}
}

func TestRatePLN(t *testing.T) {
	table := NewTable()
	rate, ok := table.Rate("PLN", date.MustParse("2025-3-13"))
	if !ok || !rate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("PLN rate = %s, %v; want 1 on an empty table", rate, ok)
	}
}

func TestRateD1WalksBack(t *testing.T) {
	table := loadSample(t)

	// 2025-03-14 has no quotation; the previous business day does.
	rate, used, err := table.RateD1("EUR", date.MustParse("2025-3-14"))
	if err != nil {
		t.Fatal(err)
	}
	if want := date.MustParse("2025-3-13"); used != want {
		t.Errorf("used day = %s, want %s", used, want)
	}
	if want := decimal.RequireFromString("4.2200"); !rate.Equal(want) {
		t.Errorf("EUR rate = %s, want %s", rate, want)
	}
}

func TestRateD1MissingCurrency(t *testing.T) {
	table := loadSample(t)
	if _, _, err := table.RateD1("CHF", date.MustParse("2025-3-14")); err == nil {
		t.Fatal("expected an error for an unquoted currency")
	}
}
