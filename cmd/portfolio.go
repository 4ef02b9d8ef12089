package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/artkachenko/wenmoon"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type portfolioCmd struct {
	create   string
	selectID string
	list     bool
	rename   string
	name     string
	deleteID string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "manage portfolios" }
func (*portfolioCmd) Usage() string {
	return `wenmoon portfolio -create <name> | -select <id> | -list | -rename <id> -name <name> | -delete <id>

  Manages the set of portfolios. Transaction commands and the summary always
  apply to the selected one. Deleting a portfolio deletes its transactions;
  the last portfolio cannot be deleted.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.create, "create", "", "Create a portfolio with this name and select it.")
	f.StringVar(&c.selectID, "select", "", "Select the portfolio with this id.")
	f.BoolVar(&c.list, "list", false, "List the portfolios.")
	f.StringVar(&c.rename, "rename", "", "Rename the portfolio with this id; requires -name.")
	f.StringVar(&c.name, "name", "", "New name, used with -rename.")
	f.StringVar(&c.deleteID, "delete", "", "Delete the portfolio with this id.")
}

func (c *portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	switch {
	case c.create != "":
		l, err := eng.CreatePortfolio(c.create)
		if err != nil {
			fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
			return subcommands.ExitFailure
		}
		fmt.Printf("Created and selected portfolio %q (%s)\n", l.Name(), l.ID())

	case c.selectID != "":
		id, err := uuid.Parse(c.selectID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing portfolio id: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := eng.SelectPortfolio(id); err != nil {
			fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
			return subcommands.ExitFailure
		}
		fmt.Printf("Selected portfolio %s\n", id)

	case c.rename != "":
		if c.name == "" {
			fmt.Fprintln(os.Stderr, "Error: -rename requires -name.")
			return subcommands.ExitUsageError
		}
		id, err := uuid.Parse(c.rename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing portfolio id: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := eng.RenamePortfolio(id, c.name); err != nil {
			fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
			return subcommands.ExitFailure
		}
		fmt.Printf("Renamed portfolio %s to %q\n", id, c.name)

	case c.deleteID != "":
		id, err := uuid.Parse(c.deleteID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing portfolio id: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := eng.DeletePortfolio(id); err != nil {
			fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted portfolio %s\n", id)

	default: // -list, also the fallback when no flag is given
		selected := eng.SelectedPortfolio().ID()
		for _, l := range eng.Portfolios() {
			marker := " "
			if l.ID() == selected {
				marker = "*"
			}
			fmt.Printf("%s %s  %q  (%d transactions)\n", marker, l.ID(), l.Name(), l.Len())
		}
	}

	return subcommands.ExitSuccess
}
