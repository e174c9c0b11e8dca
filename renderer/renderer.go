// Package renderer renders settlement reports as markdown for the terminal.
package renderer

import (
	"fmt"
	"strings"

	"github.com/mwronski/belka"
)

// ReportMarkdown renders the settled positions as a markdown table with a
// title and the total residual tax due.
func ReportMarkdown(r *belka.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dividend settlement (%s statement)\n\n", r.StatementCurrency)

	if len(r.Rows) == 0 {
		b.WriteString("No dividend operations found in the statement.\n")
		return b.String()
	}

	b.WriteString("| " + strings.Join(belka.Header, " | ") + " |\n")
	b.WriteString(strings.Repeat("|---", len(belka.Header)) + "|\n")
	for _, row := range r.Rows {
		b.WriteString("| " + strings.Join(row.Fields(), " | ") + " |\n")
	}

	fmt.Fprintf(&b, "\n**Tax due in Poland: %s PLN**\n", r.TotalPLN().StringFixed(2))
	return b.String()
}

// OperationsMarkdown renders raw dividend-related operations of a statement,
// used by the 'show' command to inspect what the parser extracted.
func OperationsMarkdown(st *belka.Statement) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dividend operations (%s statement)\n\n", st.Currency)

	ops := st.DividendOperations()
	if len(ops) == 0 {
		b.WriteString("No dividend operations found in the statement.\n")
		return b.String()
	}

	b.WriteString("| Date | Ticker | Type | Amount | Comment |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, op := range ops {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			op.Date, op.Ticker, op.Type, op.Amount.StringFixed(2), op.Comment)
	}
	fmt.Fprintf(&b, "\n%d operations.\n", len(ops))
	return b.String()
}
