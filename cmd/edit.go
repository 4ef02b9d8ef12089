package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/artkachenko/wenmoon"
	"github.com/artkachenko/wenmoon/renderer"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type editTxCmd struct {
	id       string
	quantity string
	price    string
	date     string
}

func (*editTxCmd) Name() string     { return "edit-tx" }
func (*editTxCmd) Synopsis() string { return "change a recorded transaction" }
func (*editTxCmd) Usage() string {
	return `wenmoon edit-tx -id <id> [-quantity <q>] [-price <usd>] [-date <YYYY-MM-DD>]

  Changes fields of an existing transaction. Flags not given keep their
  current value. The edit is validated against the running holding, with the
  edited transaction excluded from it.
`
}

func (c *editTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to edit, as shown by txs.")
	f.StringVar(&c.quantity, "quantity", "", "New quantity of coins.")
	f.StringVar(&c.price, "price", "", "New price per coin in USD.")
	f.StringVar(&c.date, "date", "", "New date (YYYY-MM-DD).")
}

func (c *editTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txID, err := uuid.Parse(c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing transaction id: %v\n", err)
		return subcommands.ExitUsageError
	}

	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	tx, ok := eng.Transaction(txID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: transaction %s not found in the selected portfolio\n", txID)
		return subcommands.ExitFailure
	}

	if c.quantity != "" {
		q, err := strconv.ParseFloat(c.quantity, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
			return subcommands.ExitUsageError
		}
		tx.Quantity = wenmoon.Q(q)
	}
	if c.price != "" {
		p, err := strconv.ParseFloat(c.price, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
			return subcommands.ExitUsageError
		}
		tx.Price = wenmoon.USD(p)
	}
	if c.date != "" {
		d, err := wenmoon.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		tx.Time = d.Time()
	}

	if err := eng.EditTransaction(tx); err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	fmt.Println(renderer.Transaction(tx))
	return subcommands.ExitSuccess
}

type deleteTxCmd struct {
	id string
}

func (*deleteTxCmd) Name() string     { return "delete-tx" }
func (*deleteTxCmd) Synopsis() string { return "remove a transaction from the ledger" }
func (*deleteTxCmd) Usage() string {
	return `wenmoon delete-tx -id <id>

  Removes a transaction from the selected portfolio. Deletion skips the
  holding check; a later sell can become invalid and will be flagged the
  next time it is edited.
`
}

func (c *deleteTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to delete, as shown by txs.")
}

func (c *deleteTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txID, err := uuid.Parse(c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing transaction id: %v\n", err)
		return subcommands.ExitUsageError
	}

	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	if err := eng.DeleteTransaction(txID); err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	fmt.Printf("Deleted transaction %s\n", txID)
	return subcommands.ExitSuccess
}
