package renderer

import (
	"bytes"
	"fmt"

	"github.com/artkachenko/wenmoon"
	md "github.com/nao1215/markdown"
)

// CoinsMarkdown renders the tracked-coin list, pinned subgroup first, with
// the last known market figures. Archived coins get their own short section
// so the user sees why a deleted coin is still around.
func CoinsMarkdown(pinned, unpinned, archived []*wenmoon.Coin) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Coins")
	if len(pinned) > 0 {
		doc.H2("Pinned")
		doc.Table(coinTable(pinned))
	}
	if len(unpinned) > 0 {
		doc.H2("Watching")
		doc.Table(coinTable(unpinned))
	}
	if len(pinned)+len(unpinned) == 0 {
		doc.PlainText("No tracked coins.")
	}

	if len(archived) > 0 {
		doc.H2("Archived")
		doc.PlainText("Kept because transactions still reference them.")
		table := md.TableSet{
			Header: []string{"Coin", "Symbol"},
			Rows:   [][]string{},
		}
		for _, c := range archived {
			table.Rows = append(table.Rows, []string{c.ID, c.Symbol})
		}
		doc.Table(table)
	}

	return doc.String()
}

func coinTable(coins []*wenmoon.Coin) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Coin", "Symbol", "Price", "24h", "Market Cap"},
		Rows:      [][]string{},
	}
	for _, c := range coins {
		price, change, cap := "-", "-", "-"
		if c.HasMarket {
			price = c.Price.String()
			change = c.Change24h.SignedString()
			cap = c.MarketCap.String()
		}
		table.Rows = append(table.Rows, []string{c.ID, c.Symbol, price, change, cap})
	}
	return table
}

// AlertsMarkdown renders every alert across the coin set.
func AlertsMarkdown(coins []*wenmoon.Coin) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Price Alerts")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Coin", "Target", "Direction", "Id"},
		Rows:      [][]string{},
	}
	for _, c := range coins {
		for _, a := range c.Alerts {
			table.Rows = append(table.Rows, []string{
				fmt.Sprintf("%s (%s)", c.ID, c.Symbol),
				a.TargetPrice.String(),
				string(a.Direction),
				a.ID,
			})
		}
	}
	if len(table.Rows) == 0 {
		doc.PlainText("No alerts registered.")
		return doc.String()
	}
	doc.Table(table)

	return doc.String()
}
