package belka

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mwronski/belka/date"
)

func sampleReport() *Report {
	return &Report{
		StatementCurrency: PLN,
		BelkaRate:         DefaultBelkaRate,
		Rows: []Row{
			{
				Date:         date.MustParse("2025-3-14"),
				Ticker:       "SBUX.US",
				Shares:       10,
				Net:          MFloat(5.70, "USD"),
				TaxCollected: MFloat(1.01, "USD"),
				WHTRate:      decimal.RequireFromString("0.15"),
				DateD1:       date.MustParse("2025-3-13"),
				RateD1:       decimal.RequireFromString("4.00"),
				TaxPLN:       decimal.RequireFromString("0.29"),
			},
			{
				Date:         date.MustParse("2025-3-14"),
				Ticker:       "PKN.PL",
				Net:          MFloat(24.30, PLN),
				TaxCollected: MFloat(5.70, PLN),
				WHTRate:      decimal.RequireFromString("0.19"),
			},
		},
	}
}

func TestWriteTSV(t *testing.T) {
	var b strings.Builder
	if err := sampleReport().WriteTSV(&b); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"Date\tTicker\tShares\tNet Dividend\tTax Collected Amount\tTax Collected %\tDate D-1\tExchange Rate D-1\tTax Amount PLN",
		"2025-03-14\tSBUX.US\t10\t5.70 USD\t1.01 USD\t15%\t2025-03-13\t4.0000 PLN\t0.29",
		"2025-03-14\tPKN.PL\t0\t24.30 PLN\t5.70 PLN\t19%\t-\t-\t-",
		"",
	}, "\n")
	if got := b.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestTotalPLN(t *testing.T) {
	if got := sampleReport().TotalPLN().StringFixed(2); got != "0.29" {
		t.Errorf("total = %s, want 0.29", got)
	}
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "for_google_spreadsheet.csv")
	if err := sampleReport().ExportFile(path); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), "Date\tTicker") {
		t.Errorf("unexpected export header: %q", string(content)[:40])
	}
}
