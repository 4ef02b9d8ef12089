// Package renderer turns engine reports into markdown. The CLI pipes the
// output through a terminal markdown renderer; the text also reads fine raw.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/artkachenko/wenmoon"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders a portfolio valuation: the grouped total, both
// change windows, and one row per coin holding.
func SummaryMarkdown(name string, v wenmoon.Valuation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio %s", name))
	doc.PlainText(fmt.Sprintf("Total Value: %s", v.Total))

	doc.H2("Performance")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Window", "Change", "Return"},
		Rows: [][]string{
			{"24h", v.Intraday.Value.SignedString(), v.Intraday.Percent.SignedString()},
			{"All Time", v.AllTime.Value.SignedString(), v.AllTime.Percent.SignedString()},
		},
	})

	if len(v.Groups) == 0 {
		doc.PlainText("No transactions yet.")
		return doc.String()
	}

	doc.H2("Holdings")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Coin", "Holding", "Value"},
		Rows:      [][]string{},
	}
	for _, g := range v.Groups {
		table.Rows = append(table.Rows, []string{
			g.CoinID,
			g.Holding.String(),
			g.Value.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
