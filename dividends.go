package belka

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mwronski/belka/date"
)

// Position is one dividend payment: every statement row for a given payment
// date and ticker folded together. The broker reports each payment as two
// rows, a positive net dividend and a negative withholding-tax deduction;
// both carry comments that the extraction step mines later.
type Position struct {
	Date     date.Date
	Ticker   string
	Net      decimal.Decimal // net dividend received, in the payment currency
	Withheld decimal.Decimal // tax withheld at source, kept positive
	Payouts  []Payout        // summed dividend rows, one per distinct comment
	Comments []string        // distinct comments from the constituent rows
}

// Payout is one summed dividend row of a position, kept separate so the share
// count can be reconstructed from each row's own comment.
type Payout struct {
	Amount  decimal.Decimal
	Comment string
}

// Positions filters dividend-related operations out of ops and merges them
// into one Position per (date, ticker), sorted by date then ticker.
//
// Amounts are first summed per (date, ticker, type, comment) so that split
// payments collapse, then negative amounts are folded into the withheld side.
func Positions(ops []CashOperation) []Position {
	type groupKey struct {
		day     string
		ticker  string
		typ     string
		comment string
	}
	sums := make(map[groupKey]decimal.Decimal)
	var order []groupKey
	for _, op := range ops {
		if !op.IsDividend() && !op.IsWithholdingTax() {
			continue
		}
		key := groupKey{op.Date.String(), op.Ticker, op.Type, op.Comment}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] = sums[key].Add(op.Amount)
	}

	type posKey struct {
		day    string
		ticker string
	}
	byPos := make(map[posKey]*Position)
	var posOrder []posKey
	for _, key := range order {
		pk := posKey{key.day, key.ticker}
		pos, ok := byPos[pk]
		if !ok {
			pos = &Position{Date: date.MustParse(key.day), Ticker: key.ticker}
			byPos[pk] = pos
			posOrder = append(posOrder, pk)
		}
		amount := sums[key]
		if amount.IsNegative() {
			pos.Withheld = pos.Withheld.Add(amount.Abs())
		} else {
			pos.Net = pos.Net.Add(amount)
			pos.Payouts = append(pos.Payouts, Payout{Amount: amount, Comment: strings.TrimSpace(key.comment)})
		}
		if c := strings.TrimSpace(key.comment); c != "" && !slices.Contains(pos.Comments, c) {
			pos.Comments = append(pos.Comments, c)
		}
	}

	positions := make([]Position, 0, len(posOrder))
	for _, pk := range posOrder {
		positions = append(positions, *byPos[pk])
	}
	slices.SortStableFunc(positions, func(a, b Position) int {
		if a.Date.Before(b.Date) {
			return -1
		}
		if a.Date.After(b.Date) {
			return 1
		}
		return strings.Compare(a.Ticker, b.Ticker)
	})
	return positions
}
