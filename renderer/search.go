package renderer

import (
	"bytes"
	"strconv"

	"github.com/artkachenko/wenmoon/coingecko"
	md "github.com/nao1215/markdown"
)

// SearchMarkdown renders CoinGecko search results, best match first. The Id
// column is what add-coin expects.
func SearchMarkdown(results []coingecko.SearchResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Search Results")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Id", "Symbol", "Name", "Rank"},
		Rows:      [][]string{},
	}
	for _, r := range results {
		rank := "-"
		if r.CapRank > 0 {
			rank = strconv.Itoa(r.CapRank)
		}
		table.Rows = append(table.Rows, []string{r.ID, r.Symbol, r.Name, rank})
	}
	doc.Table(table)

	return doc.String()
}
