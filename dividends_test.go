package belka

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mwronski/belka/date"
)

func op(day, ticker, typ, comment string, amount float64) CashOperation {
	return CashOperation{
		Date:    date.MustParse(day),
		Ticker:  ticker,
		Type:    typ,
		Comment: comment,
		Amount:  decimal.NewFromFloat(amount),
	}
}

func TestPositions(t *testing.T) {
	ops := []CashOperation{
		op("2025-3-14", "SBUX.US", "Dividend", "SBUX.US USD 0.5700/ SHR", 22.80),
		op("2025-3-14", "SBUX.US", "Withholding Tax", "SBUX.US USD WHT 15%", -4.02),
		op("2025-3-14", "PKN.PL", "Dywidenda", "PLN WHT 19%", 24.30),
		op("2025-3-20", "SBUX.US", "Dividend", "SBUX.US USD 0.5700/ SHR", 11.40),
		op("2025-3-14", "SBUX.US", "Deposit", "wire transfer", 1000),
	}

	positions := Positions(ops)
	if len(positions) != 3 {
		t.Fatalf("got %d positions, want 3", len(positions))
	}

	// Sorted by date then ticker.
	first := positions[0]
	if first.Ticker != "PKN.PL" || first.Date.String() != "2025-03-14" {
		t.Errorf("first position = %s %s", first.Date, first.Ticker)
	}

	sbux := positions[1]
	if sbux.Ticker != "SBUX.US" {
		t.Fatalf("second position = %s", sbux.Ticker)
	}
	if want := decimal.NewFromFloat(22.80); !sbux.Net.Equal(want) {
		t.Errorf("net = %s, want %s", sbux.Net, want)
	}
	if want := decimal.NewFromFloat(4.02); !sbux.Withheld.Equal(want) {
		t.Errorf("withheld = %s, want %s", sbux.Withheld, want)
	}
	if len(sbux.Comments) != 2 {
		t.Errorf("comments = %v, want both row comments", sbux.Comments)
	}
	// Only the positive dividend row becomes a payout.
	if len(sbux.Payouts) != 1 || !sbux.Payouts[0].Amount.Equal(decimal.NewFromFloat(22.80)) {
		t.Errorf("payouts = %v, want one of 22.80", sbux.Payouts)
	}

	if got := positions[2].Date.String(); got != "2025-03-20" {
		t.Errorf("third position date = %s", got)
	}
}

func TestPositionsMergesSplitRows(t *testing.T) {
	// The same payment split over identical rows collapses into one sum.
	ops := []CashOperation{
		op("2025-3-14", "SBUX.US", "Dividend", "SBUX.US USD 0.5700/ SHR", 11.40),
		op("2025-3-14", "SBUX.US", "Dividend", "SBUX.US USD 0.5700/ SHR", 11.40),
	}
	positions := Positions(ops)
	if len(positions) != 1 {
		t.Fatalf("got %d positions, want 1", len(positions))
	}
	if want := decimal.NewFromFloat(22.80); !positions[0].Net.Equal(want) {
		t.Errorf("net = %s, want %s", positions[0].Net, want)
	}
	if got := len(positions[0].Comments); got != 1 {
		t.Errorf("got %d comments, want deduplicated 1", got)
	}
	if got := len(positions[0].Payouts); got != 1 {
		t.Errorf("got %d payouts, want the identical rows summed into 1", got)
	}
}

func TestDividendOperations(t *testing.T) {
	st := &Statement{
		Currency: PLN,
		Operations: []CashOperation{
			op("2025-3-14", "SBUX.US", "Dividend", "", 22.80),
			op("2025-3-14", "", "Deposit", "", 1000),
			op("2025-3-14", "SBUX.US", "Withholding Tax", "", -4.02),
			op("2025-3-15", "AAPL.US", "DIVIDENT", "", 5.00),
		},
	}
	ops := st.DividendOperations()
	if len(ops) != 3 {
		t.Fatalf("got %d operations, want 3", len(ops))
	}
}
