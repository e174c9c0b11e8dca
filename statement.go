package belka

import (
	"github.com/shopspring/decimal"

	"github.com/mwronski/belka/date"
)

// Dash is the sentinel used in reports for absent or masked values.
const Dash = "-"

// PLN is the settlement currency of the pipeline.
const PLN = "PLN"

// CashOperation is one row of an XTB "CASH OPERATION HISTORY" statement,
// normalized to canonical fields regardless of the statement language.
type CashOperation struct {
	Date    date.Date
	Ticker  string
	Type    string
	Comment string
	Amount  decimal.Decimal
}

// Operation type labels as they appear in English and Polish statements.
// "DIVIDENT" is a misspelling XTB shipped in some exports.
var dividendTypes = map[string]bool{
	"Dividend":  true,
	"Dywidenda": true,
	"DIVIDENT":  true,
}

var withholdingTypes = map[string]bool{
	"Withholding Tax":     true,
	"Podatek od dywidend": true,
}

// IsDividend reports whether the operation is a dividend payment.
func (op CashOperation) IsDividend() bool { return dividendTypes[op.Type] }

// IsWithholdingTax reports whether the operation is tax withheld at source.
func (op CashOperation) IsWithholdingTax() bool { return withholdingTypes[op.Type] }

// Statement is a parsed broker export: the account currency (cell F6 of the
// sheet) and all cash operations in row order.
type Statement struct {
	Currency   string
	Operations []CashOperation
}

// DividendOperations returns the operations relevant to dividend taxation:
// dividend payments and withholding-tax deductions, in statement order.
func (s *Statement) DividendOperations() []CashOperation {
	var ops []CashOperation
	for _, op := range s.Operations {
		if op.IsDividend() || op.IsWithholdingTax() {
			ops = append(ops, op)
		}
	}
	return ops
}
