package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mwronski/belka/nbp"
)

// fetchNBPCmd holds the flags for the 'fetch-nbp' subcommand.
type fetchNBPCmd struct {
	dataDir string
	years   int
}

func (*fetchNBPCmd) Name() string     { return "fetch-nbp" }
func (*fetchNBPCmd) Synopsis() string { return "download the NBP Table A yearly rate archives" }
func (*fetchNBPCmd) Usage() string {
	return `blk fetch-nbp [-data <dir>] [-years <n>]

  Downloads the yearly NBP Table A archive CSVs (current year backwards)
  into the data directory, where 'process' and 'rate' look them up.
`
}

func (c *fetchNBPCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dataDir, "data", "", "Directory to store the archives in. Defaults to BELKA_DATA_DIR.")
	f.IntVar(&c.years, "years", 3, "How many years to download, counting back from the current one.")
}

func (c *fetchNBPCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, status := loadConfig()
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.dataDir == "" {
		c.dataDir = cfg.DataDir
	}
	if c.years < 1 {
		fmt.Fprintln(os.Stderr, "-years must be at least 1")
		return subcommands.ExitUsageError
	}

	years := nbp.ArchiveYears()
	current := years[0]
	years = years[:0]
	for i := 0; i < c.years; i++ {
		years = append(years, current-i)
	}

	paths, err := nbp.FetchArchives(ctx, cfg.NBPArchiveURL, c.dataDir, years)
	for _, path := range paths {
		fmt.Fprintf(os.Stderr, "Fetched %s\n", path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
