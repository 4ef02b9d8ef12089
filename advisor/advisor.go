// Package advisor implements the interactive AI assistant. It wires a Gemini
// chat to function tools that read the user's portfolio, so answers are
// grounded in the actual ledger instead of guesses.
package advisor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Advisor runs the chat session.
type Advisor struct {
	w       io.Writer
	r       *bufio.Reader
	analyst *Expert
}

// New creates an Advisor backed by the given experts' facilitator. It takes
// an io.Writer for the output (e.g. os.Stdout) and an io.Reader for user
// input (e.g. os.Stdin).
func New(w io.Writer, r io.Reader, analyst *Expert) *Advisor {
	return &Advisor{
		w:       w,
		r:       bufio.NewReader(r),
		analyst: analyst,
	}
}

const prompt = "advisor> "

// Run starts the interactive REPL session. Initial prompts are consumed
// before reading from the user.
func (a *Advisor) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if err := a.analyst.Start(ctx, client); err != nil {
		return err
	}

	fmt.Fprintln(a.w, "Welcome to the wenmoon advisor. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.analyst.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}
