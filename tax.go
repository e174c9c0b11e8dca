package belka

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/mwronski/belka/date"
)

// DefaultBelkaRate is the Polish flat capital-gains tax rate.
var DefaultBelkaRate = decimal.RequireFromString("0.19")

var (
	one        = decimal.NewFromInt(1)
	usWHTNoW8  = decimal.RequireFromString("0.30")
	whtEpsilon = decimal.RequireFromString("0.01")
)

// RateSource resolves an exchange rate to PLN for a currency on a given day,
// walking back to earlier business days when the day has no quotation. It
// returns the rate together with the day it was actually quoted on.
type RateSource interface {
	RateD1(currency string, on date.Date) (rate decimal.Decimal, used date.Date, err error)
}

// Processor computes the Belka settlement for a parsed statement.
type Processor struct {
	rates RateSource
	belka decimal.Decimal
}

// NewProcessor returns a Processor using the given rate source and Belka tax
// rate. The rate must be a fraction within [0, 1].
func NewProcessor(rates RateSource, belkaRate decimal.Decimal) (*Processor, error) {
	if belkaRate.IsNegative() || belkaRate.GreaterThan(one) {
		return nil, fmt.Errorf("belka tax rate must be between 0 and 1, got %s", belkaRate)
	}
	return &Processor{rates: rates, belka: belkaRate}, nil
}

// Process folds the statement's dividend operations into positions and
// settles each one. Positions are reported in date then ticker order.
func (p *Processor) Process(st *Statement) (*Report, error) {
	report := &Report{StatementCurrency: st.Currency, BelkaRate: p.belka}
	for _, pos := range Positions(st.Operations) {
		row, err := p.settle(st.Currency, pos)
		if err != nil {
			return nil, fmt.Errorf("settling %s on %s: %w", pos.Ticker, pos.Date, err)
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// settle turns one dividend position into a report row: share count, net
// dividend, tax withheld at source, and the residual PLN tax due.
func (p *Processor) settle(statementCurrency string, pos Position) (Row, error) {
	extracted, wht := p.extract(pos)
	currency := CurrencyFor(pos.Ticker, extracted)
	d1 := pos.Date.PreviousBusinessDay()

	row := Row{
		Date:    pos.Date,
		Ticker:  pos.Ticker,
		WHTRate: wht,
	}

	// Reconstruct the share count payout by payout: each summed dividend row
	// carries its own per-share amount, and a position can combine rows with
	// different ones. On a PLN statement a USD dividend arrives already
	// converted, so the per-share amount must be scaled by the D-1 rate
	// before dividing.
	net := pos.Net
	if hasPerShare(pos.Payouts) {
		conversion := one
		if statementCurrency == PLN && currency == "USD" {
			rate, used, err := p.rates.RateD1(currency, d1)
			if err != nil {
				return Row{}, err
			}
			if used != d1 {
				log.Printf("no %s rate on %s, using %s", currency, d1, used)
			}
			conversion = rate
		}
		net = decimal.Zero
		shares := decimal.Zero
		for _, payout := range pos.Payouts {
			ps, ok := ParsePerShare(payout.Comment)
			if !ok || ps.Amount.IsZero() {
				net = net.Add(payout.Amount)
				continue
			}
			s := payout.Amount.Div(ps.Amount.Mul(conversion)).RoundBank(0)
			shares = shares.Add(s)
			net = net.Add(ps.Amount.Mul(s))
		}
		row.Shares = shares.IntPart()
	}
	row.Net = M(net.Round(2), currency)

	row.TaxCollected = p.taxCollected(statementCurrency, pos, row.Net, wht)

	// Withholding at or above the Belka rate settles the Polish liability in
	// full: no D-1 lookup and no residual tax for this position.
	if wht.GreaterThanOrEqual(p.belka) {
		return row, nil
	}

	row.DateD1 = d1
	rate := one
	if currency != PLN {
		r, used, err := p.rates.RateD1(currency, d1)
		if err != nil {
			return Row{}, err
		}
		if used != d1 {
			log.Printf("no %s rate on %s, using %s", currency, d1, used)
		}
		rate = r
		row.RateD1 = r
	}
	residual := row.Net.Amount().Mul(p.belka).Sub(row.TaxCollected.Amount())
	row.TaxPLN = residual.Mul(rate).Round(2)
	return row, nil
}

// hasPerShare reports whether any payout comment carries a per-share amount.
func hasPerShare(payouts []Payout) bool {
	for _, payout := range payouts {
		if ps, ok := ParsePerShare(payout.Comment); ok && !ps.Amount.IsZero() {
			return true
		}
	}
	return false
}

// extract scans the position's comments for the payment currency and the
// withholding rate, falling back to the suffix defaults when absent.
func (p *Processor) extract(pos Position) (currency string, wht decimal.Decimal) {
	for _, comment := range pos.Comments {
		if ps, _ := ParsePerShare(comment); currency == "" && ps.Currency != "" {
			currency = ps.Currency
		}
	}

	for _, comment := range pos.Comments {
		if rate, ok := ParseWHTRate(comment); ok {
			if rate.Sub(usWHTNoW8).Abs().LessThan(whtEpsilon) && CurrencyFor(pos.Ticker, "") == "USD" {
				log.Printf("30%% withholding on %s: filing a W-8BEN with the broker reduces the US rate to 15%%", pos.Ticker)
			}
			return currency, rate.Round(2)
		}
	}

	rate := DefaultWHTRate(pos.Ticker)
	if rate.IsZero() {
		log.Printf("no withholding information for %s on %s, assuming 0%%", pos.Ticker, pos.Date)
	} else {
		log.Printf("no withholding information for %s on %s, assuming the default %s%%", pos.Ticker, pos.Date, rate.Mul(decimal.NewFromInt(100)))
	}
	return currency, rate
}

// taxCollected computes the tax withheld at source in the payment currency.
// On a USD statement the deduction rows carry the amount directly; on a PLN
// statement it is derived from the net amount and the withholding rate:
// gross = net / (1 - rate), collected = gross * rate.
func (p *Processor) taxCollected(statementCurrency string, pos Position, net Money, wht decimal.Decimal) Money {
	if statementCurrency == "USD" && !pos.Withheld.IsZero() {
		return M(pos.Withheld.Round(2), net.Currency())
	}
	if wht.IsZero() || wht.GreaterThanOrEqual(one) {
		return Money{}
	}
	gross := net.Amount().Div(one.Sub(wht))
	return M(gross.Mul(wht).Round(2), net.Currency())
}
