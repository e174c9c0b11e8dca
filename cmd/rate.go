package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mwronski/belka/date"
	"github.com/mwronski/belka/nbp"
)

// rateCmd holds the flags for the 'rate' subcommand.
type rateCmd struct {
	currency string
	on       string
	dataDir  string
	live     bool
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "look up an NBP Table A exchange rate" }
func (*rateCmd) Usage() string {
	return `blk rate -c <currency> [-d <date>] [-data <dir>] [-live]

  Looks up the PLN mid rate for a currency on a date, walking back to the
  previous quotation day when needed. With -live the NBP Web API is queried
  instead of the local archive files.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "USD", "ISO 4217 currency code to look up.")
	f.StringVar(&c.on, "d", date.Today().String(), "Quotation date (ISO format).")
	f.StringVar(&c.dataDir, "data", "", "Directory holding the NBP archive CSVs. Defaults to BELKA_DATA_DIR.")
	f.BoolVar(&c.live, "live", false, "Query the NBP Web API instead of the local archives.")
}

func (c *rateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.live {
		rate, err := nbp.FetchDay(ctx, c.currency, on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s %s = %s PLN\n", on, c.currency, rate)
		return subcommands.ExitSuccess
	}

	cfg, status := loadConfig()
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.dataDir == "" {
		c.dataDir = cfg.DataDir
	}

	table, err := nbp.LoadArchives(c.dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	rate, used, err := table.RateD1(c.currency, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if used != on {
		fmt.Fprintf(os.Stderr, "No quotation on %s, using %s.\n", on, used)
	}
	fmt.Printf("%s %s = %s PLN\n", used, c.currency, rate)
	return subcommands.ExitSuccess
}
