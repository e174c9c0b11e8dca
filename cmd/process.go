package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/mwronski/belka"
	"github.com/mwronski/belka/nbp"
	"github.com/mwronski/belka/renderer"
	"github.com/mwronski/belka/xtb"
)

// processCmd holds the flags for the 'process' subcommand.
type processCmd struct {
	input   string
	output  string
	dataDir string
	rate    string
	dryRun  bool
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "settle dividend taxes from a broker statement" }
func (*processCmd) Usage() string {
	return `blk process [-i <statement.xlsx>] [-o <export.tsv>] [-data <dir>] [-rate <fraction>]

  Parses an XTB cash-operation statement, converts foreign dividends to PLN
  at the NBP D-1 rate, computes the residual Belka tax, writes the
  spreadsheet export and prints a summary.
`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Statement XLSX file. Defaults to BELKA_INPUT_FILE.")
	f.StringVar(&c.output, "o", "", "Export file to write. Defaults to BELKA_OUTPUT_FILE.")
	f.StringVar(&c.dataDir, "data", "", "Directory holding the NBP archive CSVs. Defaults to BELKA_DATA_DIR.")
	f.StringVar(&c.rate, "rate", "", "Belka tax rate as a fraction (e.g. 0.19). Defaults to BELKA_TAX_RATE.")
	f.BoolVar(&c.dryRun, "n", false, "Print the report without writing the export file.")
}

func (c *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, status := loadConfig()
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.input == "" {
		c.input = cfg.InputFile
	}
	if c.output == "" {
		c.output = cfg.OutputFile
	}
	if c.dataDir == "" {
		c.dataDir = cfg.DataDir
	}
	belkaRate := cfg.BelkaRate
	if c.rate != "" {
		r, err := decimal.NewFromString(c.rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -rate: %v\n", err)
			return subcommands.ExitUsageError
		}
		belkaRate = r
	}

	st, err := xtb.ImportFile(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	table, err := nbp.LoadArchives(c.dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	processor, err := belka.NewProcessor(table, belkaRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	report, err := processor.Process(st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReportMarkdown(report))

	if c.dryRun {
		return subcommands.ExitSuccess
	}
	if err := report.ExportFile(c.output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Export written to %s\n", c.output)
	return subcommands.ExitSuccess
}
