// Package cmd implements the CLI application to track a crypto portfolio.
package cmd

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/artkachenko/wenmoon"
	"github.com/artkachenko/wenmoon/alertsvc"
	"github.com/artkachenko/wenmoon/coingecko"
	"github.com/google/subcommands"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	newBuyCmd(),
	newSellCmd(),
	newTransferInCmd(),
	newTransferOutCmd(),
	&editTxCmd{},
	&deleteTxCmd{},
	&txsCmd{},

	&addCoinCmd{},
	&deleteCoinCmd{},
	&coinsCmd{},
	&searchCmd{},
	&pinCmd{},
	&unpinCmd{},
	&moveCmd{},

	&summaryCmd{},
	&refreshCmd{},
	&priceCmd{},

	&alertsCmd{},
	&syncAlertsCmd{},
	&addAlertCmd{},
	&removeAlertCmd{},
	&dismissAlertCmd{},
	&setDeviceTokenCmd{},

	&portfolioCmd{},
	&topicCmd{},
	&assistCmd{},
}

// As a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var dataDir = flag.String("data-dir", defaultDataDir(), "Path to the data directory holding portfolios, coins and settings")

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wenmoon"
	}
	return filepath.Join(home, ".wenmoon")
}

// newGecko creates the CoinGecko client, with the API key from the
// environment when one is set.
func newGecko() *coingecko.Client {
	var opts []coingecko.Option
	if key := os.Getenv("COINGECKO_API_KEY"); key != "" {
		opts = append(opts, coingecko.WithAPIKey(key))
	}
	return coingecko.New(opts...)
}

// openEngine loads the engine from the app data directory, wiring the live
// market and alert providers.
func openEngine() (*wenmoon.Engine, error) {
	store, err := wenmoon.NewStore(*dataDir)
	if err != nil {
		return nil, err
	}
	return wenmoon.NewEngine(store, newGecko(), alertsvc.New())
}

// authToken returns the alert service credential from the environment. An
// empty token is valid for unauthenticated endpoints.
func authToken() string { return os.Getenv("WENMOON_AUTH_TOKEN") }
