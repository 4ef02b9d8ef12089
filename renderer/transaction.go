package renderer

import (
	"fmt"

	"github.com/artkachenko/wenmoon"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx wenmoon.Transaction) string {
	switch tx.Type {
	case wenmoon.TxBuy:
		return fmt.Sprintf("Bought %s %s at %s", tx.Quantity, tx.CoinID, tx.Price)
	case wenmoon.TxSell:
		return fmt.Sprintf("Sold %s %s at %s", tx.Quantity, tx.CoinID, tx.Price)
	case wenmoon.TxTransferIn:
		return fmt.Sprintf("Received %s %s", tx.Quantity, tx.CoinID)
	case wenmoon.TxTransferOut:
		return fmt.Sprintf("Sent %s %s", tx.Quantity, tx.CoinID)
	default:
		return string(tx.Type)
	}
}
