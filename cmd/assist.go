package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/artkachenko/wenmoon"
	"github.com/artkachenko/wenmoon/advisor"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI advisor" }
func (*assistCmd) Usage() string {
	return `wenmoon assist [initial question]

  Starts an interactive session with the AI advisor. It answers questions
  about your portfolio through read-only tools over the ledger. Type 'bye'
  to exit.
`
}

func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := advisor.New(os.Stdout, os.Stdin, advisor.NewAnalyst(eng))
	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
