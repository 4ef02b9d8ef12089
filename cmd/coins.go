package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/artkachenko/wenmoon"
	"github.com/artkachenko/wenmoon/renderer"
	"github.com/google/subcommands"
)

type addCoinCmd struct {
	id string
}

func (*addCoinCmd) Name() string     { return "add-coin" }
func (*addCoinCmd) Synopsis() string { return "track a coin" }
func (*addCoinCmd) Usage() string {
	return `wenmoon add-coin -id <coingecko-id>

  Adds a coin to the tracked list. The symbol, name and image come from
  CoinGecko. Adding a coin that was archived brings it back with its
  transactions intact.
`
}

func (c *addCoinCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "CoinGecko id of the coin, e.g. bitcoin.")
}

func (c *addCoinCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required. Use 'wenmoon search' to find one.")
		return subcommands.ExitUsageError
	}

	coin, err := newGecko().CoinDetails(ctx, c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	added, err := eng.AddCoin(coin)
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	fmt.Printf("Tracking %s (%s)\n", added.Name, strings.ToUpper(added.Symbol))
	return subcommands.ExitSuccess
}

type deleteCoinCmd struct {
	id string
}

func (*deleteCoinCmd) Name() string     { return "delete-coin" }
func (*deleteCoinCmd) Synopsis() string { return "stop tracking a coin" }
func (*deleteCoinCmd) Usage() string {
	return `wenmoon delete-coin -id <coingecko-id>

  Removes a coin from the tracked list. A coin with transactions in any
  portfolio is archived instead of deleted, so history and valuation keep
  working.
`
}

func (c *deleteCoinCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "CoinGecko id of the coin to remove.")
}

func (c *deleteCoinCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	archived, err := eng.DeleteCoin(c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	if archived {
		fmt.Printf("Archived %s: it still has transactions in a portfolio\n", c.id)
	} else {
		fmt.Printf("Deleted %s\n", c.id)
	}
	return subcommands.ExitSuccess
}

type coinsCmd struct{}

func (*coinsCmd) Name() string     { return "coins" }
func (*coinsCmd) Synopsis() string { return "list the tracked coins" }
func (*coinsCmd) Usage() string {
	return `wenmoon coins

  Lists the tracked coins with their last known market data, pinned coins
  first, then the archived ones.
`
}

func (*coinsCmd) SetFlags(*flag.FlagSet) {}

func (c *coinsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	pinned, unpinned, archived := eng.CoinGroups()
	printMarkdown(renderer.CoinsMarkdown(pinned, unpinned, archived))
	return subcommands.ExitSuccess
}

type searchCmd struct {
	query string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search CoinGecko for a coin id" }
func (*searchCmd) Usage() string {
	return `wenmoon search -q <text>

  Searches CoinGecko by name or ticker and prints the matching ids, best
  match first. Use the id column with add-coin.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Name or ticker to search for.")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.query == "" {
		fmt.Fprintln(os.Stderr, "Error: -q is required.")
		return subcommands.ExitUsageError
	}

	results, err := newGecko().Search(ctx, c.query)
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	if len(results) == 0 {
		fmt.Printf("No result for %q\n", c.query)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.SearchMarkdown(results))
	return subcommands.ExitSuccess
}

// pinCmd and unpinCmd toggle the pinned flag; pinned coins always sort
// before unpinned ones.
type pinCmd struct{ id string }

func (*pinCmd) Name() string     { return "pin" }
func (*pinCmd) Synopsis() string { return "pin a coin to the top of the list" }
func (*pinCmd) Usage() string {
	return `wenmoon pin -id <coingecko-id>
`
}

func (c *pinCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "CoinGecko id of the coin to pin.")
}

func (c *pinCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return togglePin(c.id, true)
}

type unpinCmd struct{ id string }

func (*unpinCmd) Name() string     { return "unpin" }
func (*unpinCmd) Synopsis() string { return "unpin a coin" }
func (*unpinCmd) Usage() string {
	return `wenmoon unpin -id <coingecko-id>
`
}

func (c *unpinCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "CoinGecko id of the coin to unpin.")
}

func (c *unpinCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return togglePin(c.id, false)
}

func togglePin(id string, pinned bool) subcommands.ExitStatus {
	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	if pinned {
		err = eng.PinCoin(id)
	} else {
		err = eng.UnpinCoin(id)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type moveCmd struct {
	pinned bool
	from   string
	to     int
}

func (*moveCmd) Name() string     { return "move" }
func (*moveCmd) Synopsis() string { return "reorder coins inside their group" }
func (*moveCmd) Usage() string {
	return `wenmoon move -from <i[,j,...]> -to <k> [-pinned]

  Moves the coins at the given positions to position k, inside the unpinned
  group by default, or the pinned group with -pinned. Positions are the
  zero-based rows printed by 'wenmoon coins'. The resulting order is saved
  and survives refreshes.
`
}

func (c *moveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.pinned, "pinned", false, "Reorder the pinned group instead of the unpinned one.")
	f.StringVar(&c.from, "from", "", "Comma-separated positions of the coins to move.")
	f.IntVar(&c.to, "to", 0, "Destination position.")
}

func (c *moveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var from []int
	for _, s := range strings.Split(c.from, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -from position %q: %v\n", s, err)
			return subcommands.ExitUsageError
		}
		from = append(from, i)
	}
	if len(from) == 0 {
		fmt.Fprintln(os.Stderr, "Error: -from is required.")
		return subcommands.ExitUsageError
	}

	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	if err := eng.MoveCoins(c.pinned, from, c.to); err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	pinned, unpinned, archived := eng.CoinGroups()
	printMarkdown(renderer.CoinsMarkdown(pinned, unpinned, archived))
	return subcommands.ExitSuccess
}
