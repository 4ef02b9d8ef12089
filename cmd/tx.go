package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/artkachenko/wenmoon"
	"github.com/artkachenko/wenmoon/renderer"
	"github.com/google/subcommands"
)

// recordTxCmd records one transaction of a fixed type. The four transaction
// commands share this implementation; transfers take no price flag.
type recordTxCmd struct {
	typ      wenmoon.TxType
	coin     string
	quantity float64
	price    float64
	date     string
}

func newBuyCmd() *recordTxCmd         { return &recordTxCmd{typ: wenmoon.TxBuy} }
func newSellCmd() *recordTxCmd        { return &recordTxCmd{typ: wenmoon.TxSell} }
func newTransferInCmd() *recordTxCmd  { return &recordTxCmd{typ: wenmoon.TxTransferIn} }
func newTransferOutCmd() *recordTxCmd { return &recordTxCmd{typ: wenmoon.TxTransferOut} }

func (c *recordTxCmd) Name() string { return string(c.typ) }

func (c *recordTxCmd) Synopsis() string {
	switch c.typ {
	case wenmoon.TxBuy:
		return "record a purchase of coins"
	case wenmoon.TxSell:
		return "record a sale of coins"
	case wenmoon.TxTransferIn:
		return "record coins arriving from outside"
	default:
		return "record coins leaving for outside"
	}
}

func (c *recordTxCmd) Usage() string {
	if c.typ.Transfer() {
		return fmt.Sprintf(`wenmoon %s -coin <id> -quantity <q> [-date <YYYY-MM-DD>]

  Records a %s in the selected portfolio. Transfers carry no price.
`, c.typ, c.typ)
	}
	return fmt.Sprintf(`wenmoon %s -coin <id> -quantity <q> -price <usd> [-date <YYYY-MM-DD>]

  Records a %s in the selected portfolio. The price is per coin, in USD.
`, c.typ, c.typ)
}

func (c *recordTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.coin, "coin", "", "CoinGecko id of the coin, e.g. bitcoin.")
	f.Float64Var(&c.quantity, "quantity", 0, "Quantity of coins.")
	if !c.typ.Transfer() {
		f.Float64Var(&c.price, "price", 0, "Price per coin in USD.")
	}
	f.StringVar(&c.date, "date", "", "Date of the transaction (YYYY-MM-DD). Defaults to now.")
}

func (c *recordTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var at time.Time
	if c.date != "" {
		d, err := wenmoon.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		at = d.Time()
	}

	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	tx := wenmoon.NewTransaction(c.typ, c.coin, wenmoon.Q(c.quantity), wenmoon.USD(c.price), at)
	if err := eng.RecordTransaction(tx); err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	fmt.Println(renderer.Transaction(tx))
	return subcommands.ExitSuccess
}

type txsCmd struct{}

func (*txsCmd) Name() string     { return "txs" }
func (*txsCmd) Synopsis() string { return "list the selected portfolio's transactions" }
func (*txsCmd) Usage() string {
	return `wenmoon txs

  Lists the transactions of the selected portfolio, grouped per coin and per
  day, newest first. The id shown next to each line is what edit-tx and
  delete-tx expect.
`
}

func (*txsCmd) SetFlags(*flag.FlagSet) {}

func (c *txsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(eng.GroupedTransactions()))
	return subcommands.ExitSuccess
}
