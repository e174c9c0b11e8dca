// Package cmd implements the CLI to settle dividend taxes from broker
// statements.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/mwronski/belka"
)

// Commands lists the subcommands in registration order. A main package
// registers them on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&processCmd{},
	&showCmd{},
	&rateCmd{},
	&fetchNBPCmd{},
	&topicCmd{},
}

// loadConfig loads the environment-backed settings, reporting configuration
// errors on stderr the way usage errors are reported.
func loadConfig() (*belka.Config, subcommands.ExitStatus) {
	cfg, err := belka.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return cfg, subcommands.ExitSuccess
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the terminal renderer cannot be built (e.g. output is a pipe).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
