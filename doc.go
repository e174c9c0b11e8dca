// Package belka turns an XTB brokerage cash-operation export into a Polish
// dividend-tax settlement.
//
// The pipeline filters dividend and withholding-tax rows out of a statement,
// folds them into one position per payment date and ticker, reconstructs the
// per-share amount, currency and withholding rate from the broker's free-text
// comments, converts foreign amounts to PLN at the NBP Table A rate of the
// previous business day (D-1), and computes the residual flat capital-gains
// tax ("Belka", 19%) net of tax already withheld at source.
//
// The resulting report is exported as a tab-separated file ready to paste
// into a spreadsheet. Statement parsing lives in the xtb subpackage, the
// exchange-rate archive in nbp, and the CLI in cmd.
package belka
