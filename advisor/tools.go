package advisor

import (
	"context"

	"github.com/artkachenko/wenmoon"
	"github.com/artkachenko/wenmoon/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// NewAnalyst builds the expert answering portfolio questions, with read-only
// tools over the engine.
func NewAnalyst(eng *wenmoon.Engine) *Expert {
	tools := []Function{
		summaryTool(eng),
		transactionsTool(eng),
		coinsTool(eng),
	}

	return &Expert{
		Name:      "Analyst",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(tools)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a crypto portfolio analyst. The user asks about their own
			holdings, transactions and tracked coins.

			Always read the portfolio through the available tools before
			answering; never invent figures. Coin ids are CoinGecko ids like
			'bitcoin'. Amounts are in USD.

			Keep answers short and concrete. You give information, not
			financial advice.
		`}}},
		},
		Library: NewLibrary(tools),
	}
}

// toolFunc implements Function with a declaration and a closure.
type toolFunc struct {
	decl *genai.FunctionDeclaration
	fn   func(ctx context.Context) (string, error)
}

func (t *toolFunc) Declaration() *genai.FunctionDeclaration { return t.decl }

func (t *toolFunc) Call(ctx context.Context, id string, _ map[string]any) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{ID: id, Name: t.decl.Name}
	out, err := t.fn(ctx)
	if err != nil {
		fresp.Response = map[string]any{"error": err.Error()}
		return fresp
	}
	fresp.Response = map[string]any{"output": out}
	return fresp
}

func textResponse(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func summaryTool(eng *wenmoon.Engine) Function {
	return &toolFunc{
		decl: &genai.FunctionDeclaration{
			Name: "PortfolioSummary",
			Description: `PortfolioSummary values the selected portfolio against the latest
			market snapshots: total value, 24h change, all-time change and one row per
			held coin.`,
			Response: textResponse("A markdown-formatted valuation of the selected portfolio."),
		},
		fn: func(ctx context.Context) (string, error) {
			if err := eng.RefreshMarketData(ctx); err != nil {
				// A stale snapshot is still an answer; note it and continue.
				return renderer.SummaryMarkdown(eng.SelectedPortfolio().Name(), eng.Valuation()) +
					"\n(market data may be stale: " + wenmoon.UserMessage(err) + ")", nil
			}
			return renderer.SummaryMarkdown(eng.SelectedPortfolio().Name(), eng.Valuation()), nil
		},
	}
}

func transactionsTool(eng *wenmoon.Engine) Function {
	return &toolFunc{
		decl: &genai.FunctionDeclaration{
			Name: "Transactions",
			Description: `Transactions lists every transaction of the selected portfolio,
			grouped per coin and per day, newest first.`,
			Response: textResponse("A markdown-formatted transaction history."),
		},
		fn: func(ctx context.Context) (string, error) {
			return renderer.HistoryMarkdown(eng.GroupedTransactions()), nil
		},
	}
}

func coinsTool(eng *wenmoon.Engine) Function {
	return &toolFunc{
		decl: &genai.FunctionDeclaration{
			Name: "Coins",
			Description: `Coins lists the tracked coins with their last known price, 24h
			change and market cap, pinned coins first, then the archived ones.`,
			Response: textResponse("A markdown-formatted coin list."),
		},
		fn: func(ctx context.Context) (string, error) {
			pinned, unpinned, archived := eng.CoinGroups()
			return renderer.CoinsMarkdown(pinned, unpinned, archived), nil
		},
	}
}
