package renderer

import (
	"bytes"
	"fmt"

	"github.com/artkachenko/wenmoon"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the grouped transaction history: one section per
// coin, newest day first, with the transaction id shown so a line can be
// edited or deleted by it.
func HistoryMarkdown(groups []wenmoon.CoinGroup) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	if len(groups) == 0 {
		doc.PlainText("No transactions yet.")
		return doc.String()
	}

	for _, g := range groups {
		doc.H2(fmt.Sprintf("%s (holding %s, value %s)", g.CoinID, g.Holding, g.Value))
		for _, day := range g.Days {
			doc.H3(day.Day.String())
			table := md.TableSet{
				Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft},
				Header:    []string{"Event", "Cost", "Id"},
				Rows:      [][]string{},
			}
			for _, tx := range day.Transactions {
				cost := "-"
				if !tx.Type.Transfer() {
					cost = tx.Cost().String()
				}
				table.Rows = append(table.Rows, []string{
					Transaction(tx),
					cost,
					tx.ID.String(),
				})
			}
			doc.Table(table)
		}
	}

	return doc.String()
}
