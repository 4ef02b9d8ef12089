package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/artkachenko/wenmoon"
	"github.com/artkachenko/wenmoon/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	refresh bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "value the selected portfolio" }
func (*summaryCmd) Usage() string {
	return `wenmoon summary [-refresh]

  Values the selected portfolio against the latest market snapshots: total
  value, 24h change and all-time change, plus one row per held coin. With
  -refresh the market data is fetched first.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "Fetch fresh market data before valuing.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	if c.refresh {
		if err := eng.RefreshMarketData(ctx); err != nil {
			fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
			return subcommands.ExitFailure
		}
	}

	v := eng.Valuation()
	printMarkdown(renderer.SummaryMarkdown(eng.SelectedPortfolio().Name(), v))
	return subcommands.ExitSuccess
}

type priceCmd struct {
	id string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "spot price of one coin" }
func (*priceCmd) Usage() string {
	return `wenmoon price -id <coingecko-id>

  Prints the current USD price of a single coin straight from the simple
  price endpoint. Nothing is cached or persisted; use refresh to update the
  tracked list.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "CoinGecko id of the coin, e.g. bitcoin.")
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}

	price, err := newGecko().SimplePrice(ctx, c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %s\n", c.id, price)
	return subcommands.ExitSuccess
}

type refreshCmd struct{}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "fetch fresh market data" }
func (*refreshCmd) Usage() string {
	return `wenmoon refresh

  Fetches market snapshots for every tracked coin, plus archived coins the
  selected portfolio still references, and prints the updated coin list.
`
}

func (*refreshCmd) SetFlags(*flag.FlagSet) {}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	if err := eng.RefreshMarketData(ctx); err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	pinned, unpinned, archived := eng.CoinGroups()
	printMarkdown(renderer.CoinsMarkdown(pinned, unpinned, archived))
	return subcommands.ExitSuccess
}
