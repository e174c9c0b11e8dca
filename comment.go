package belka

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// This file mines the broker's free-text comments. A dividend payment
// typically comes as two rows whose comments look like:
//
//	"SBUX.US USD 0.5700/ SHR"
//	"SBUX.US USD WHT 15%"
//
// Older exports use "0.57 USD/SHR", and some rows carry only a bare number.

var (
	reWHTCurrency   = regexp.MustCompile(`([A-Z]{3})\s+WHT`)
	rePerShareSlash = regexp.MustCompile(`([\d.]+)\s*/\s*SHR`)
	rePerShareLead  = regexp.MustCompile(`([A-Z]{3}) ([\d.]+)/ SHR`)
	rePerShareTrail = regexp.MustCompile(`([\d.]+) ([A-Z]{3})/SHR`)
	reWHTRate       = regexp.MustCompile(`WHT\s*(\d+(?:\.\d+)?)%`)
	rePercent       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	reNumber        = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// PerShare is the dividend-per-share fact extracted from a comment. Currency
// may be known even when the amount is not (a WHT row names the currency but
// not the per-share amount).
type PerShare struct {
	Amount   decimal.Decimal
	Currency string
}

// ParsePerShare extracts the dividend per share and its currency from a
// comment. The bool reports whether an amount was found; the returned
// currency may be set either way.
func ParsePerShare(comment string) (PerShare, bool) {
	// A "CCY WHT" comment names the currency; the same comment sometimes
	// carries the per-share amount too.
	if m := reWHTCurrency.FindStringSubmatch(comment); m != nil {
		ps := PerShare{Currency: m[1]}
		if a := rePerShareSlash.FindStringSubmatch(comment); a != nil {
			if v, err := decimal.NewFromString(a[1]); err == nil {
				ps.Amount = v
				return ps, true
			}
		}
		return ps, false
	}
	if m := rePerShareLead.FindStringSubmatch(comment); m != nil {
		if v, err := decimal.NewFromString(m[2]); err == nil {
			return PerShare{Amount: v, Currency: m[1]}, true
		}
	}
	if m := rePerShareTrail.FindStringSubmatch(comment); m != nil {
		if v, err := decimal.NewFromString(m[1]); err == nil {
			return PerShare{Amount: v, Currency: m[2]}, true
		}
	}
	// Last resort: a bare number, currency to be inferred from the ticker.
	if m := reNumber.FindString(comment); m != "" {
		if v, err := decimal.NewFromString(m); err == nil {
			return PerShare{Amount: v}, true
		}
	}
	return PerShare{}, false
}

// ParseWHTRate extracts the withholding-tax rate from a comment as a decimal
// fraction (e.g. "WHT 15%" -> 0.15). A plain percentage is accepted when no
// WHT marker is present.
func ParseWHTRate(comment string) (decimal.Decimal, bool) {
	m := reWHTRate.FindStringSubmatch(comment)
	if m == nil {
		m = rePercent.FindStringSubmatch(comment)
	}
	if m == nil {
		return decimal.Decimal{}, false
	}
	v, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v.Div(decimal.NewFromInt(100)), true
}

// eurozoneSuffixes are the exchange suffixes whose dividends pay in EUR.
var eurozoneSuffixes = []string{".FR", ".DE", ".IE", ".NL", ".ES", ".IT", ".BE", ".AT", ".FI", ".PT"}

// CurrencyFor determines the payment currency of a position. An explicitly
// extracted currency wins; otherwise the ticker's exchange suffix decides.
// ASB.PL is a US company listed in Warsaw and pays in USD.
func CurrencyFor(ticker, extracted string) string {
	if extracted != "" {
		return extracted
	}
	if strings.Contains(ticker, "ASB.PL") {
		return "USD"
	}
	switch {
	case strings.Contains(ticker, ".US"):
		return "USD"
	case strings.Contains(ticker, ".PL"):
		return PLN
	case strings.Contains(ticker, ".DK"):
		return "DKK"
	case strings.Contains(ticker, ".UK"):
		return "GBP"
	}
	for _, suffix := range eurozoneSuffixes {
		if strings.Contains(ticker, suffix) {
			return "EUR"
		}
	}
	return "USD"
}

// Withholding rates at source by exchange suffix, used when the statement
// comment carries no percentage. The US rate assumes a W-8BEN form is on
// file; without one the broker withholds 30%.
var defaultWHTRates = []struct {
	suffix string
	rate   decimal.Decimal
}{
	{".US", decimal.RequireFromString("0.15")},
	{".PL", decimal.RequireFromString("0.19")},
	{".DK", decimal.RequireFromString("0.15")},
	{".IE", decimal.RequireFromString("0.15")},
	{".UK", decimal.Zero}, // no UK withholding for non-residents
	{".FR", decimal.Zero}, // Poland-France tax treaty
}

// DefaultWHTRate returns the assumed withholding rate for a ticker whose
// comments carry no explicit percentage.
func DefaultWHTRate(ticker string) decimal.Decimal {
	// ASB.PL distributes without withholding at source.
	if strings.Contains(ticker, "ASB.PL") {
		return decimal.Zero
	}
	for _, d := range defaultWHTRates {
		if strings.Contains(ticker, d.suffix) {
			return d.rate
		}
	}
	return decimal.Zero
}
