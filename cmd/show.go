package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mwronski/belka/renderer"
	"github.com/mwronski/belka/xtb"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	input string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the dividend operations parsed from a statement" }
func (*showCmd) Usage() string {
	return `blk show [-i <statement.xlsx>]

  Parses a statement and lists the raw dividend and withholding-tax rows,
  useful to check the import before settling.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Statement XLSX file. Defaults to BELKA_INPUT_FILE.")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, status := loadConfig()
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.input == "" {
		c.input = cfg.InputFile
	}

	st, err := xtb.ImportFile(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.OperationsMarkdown(st))
	return subcommands.ExitSuccess
}
