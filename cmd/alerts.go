package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/artkachenko/wenmoon"
	"github.com/artkachenko/wenmoon/renderer"
	"github.com/google/subcommands"
)

type alertsCmd struct{}

func (*alertsCmd) Name() string     { return "alerts" }
func (*alertsCmd) Synopsis() string { return "list the locally known price alerts" }
func (*alertsCmd) Usage() string {
	return `wenmoon alerts

  Lists the price alerts as last synced from the alert service. Run
  sync-alerts to bring the list up to date.
`
}

func (*alertsCmd) SetFlags(*flag.FlagSet) {}

func (c *alertsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AlertsMarkdown(eng.AllCoins()))
	return subcommands.ExitSuccess
}

type syncAlertsCmd struct{}

func (*syncAlertsCmd) Name() string     { return "sync-alerts" }
func (*syncAlertsCmd) Synopsis() string { return "replace the local alerts with the server's" }
func (*syncAlertsCmd) Usage() string {
	return `wenmoon sync-alerts

  Fetches the alerts registered on the alert service for this install and
  replaces each coin's local list with them. Alerts for untracked coins are
  dropped. The credential comes from the WENMOON_AUTH_TOKEN environment
  variable.
`
}

func (*syncAlertsCmd) SetFlags(*flag.FlagSet) {}

func (c *syncAlertsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	if err := eng.SyncAlerts(ctx, authToken()); err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.AlertsMarkdown(eng.AllCoins()))
	return subcommands.ExitSuccess
}

type addAlertCmd struct {
	coin   string
	target float64
}

func (*addAlertCmd) Name() string     { return "add-alert" }
func (*addAlertCmd) Synopsis() string { return "register a price alert" }
func (*addAlertCmd) Usage() string {
	return `wenmoon add-alert -coin <id> -target <usd>

  Registers a price alert on the alert service and mirrors it locally. The
  watch direction comes from the coin's current price: a target above it
  fires on the way up, below on the way down. Refresh first if the coin has
  no market data yet.
`
}

func (c *addAlertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.coin, "coin", "", "CoinGecko id of the coin to watch.")
	f.Float64Var(&c.target, "target", 0, "Target price in USD.")
}

func (c *addAlertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.target <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -target must be a positive price.")
		return subcommands.ExitUsageError
	}

	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	alert, err := eng.RegisterAlert(ctx, authToken(), c.coin, wenmoon.USD(c.target))
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	fmt.Printf("Registered alert %s: %s %s %s\n", alert.ID, alert.CoinID, alert.Direction, alert.TargetPrice)
	return subcommands.ExitSuccess
}

type removeAlertCmd struct {
	id string
}

func (*removeAlertCmd) Name() string     { return "remove-alert" }
func (*removeAlertCmd) Synopsis() string { return "delete an alert on the alert service" }
func (*removeAlertCmd) Usage() string {
	return `wenmoon remove-alert -id <alert-id>

  Deletes an alert from the alert service and drops the local mirror. To
  only clear a fired alert locally, use dismiss-alert.
`
}

func (c *removeAlertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the alert, as shown by alerts.")
}

func (c *removeAlertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	if err := eng.RemoveAlert(ctx, authToken(), c.id); err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed alert %s\n", c.id)
	return subcommands.ExitSuccess
}

type dismissAlertCmd struct {
	id string
}

func (*dismissAlertCmd) Name() string     { return "dismiss-alert" }
func (*dismissAlertCmd) Synopsis() string { return "remove a fired alert locally" }
func (*dismissAlertCmd) Usage() string {
	return `wenmoon dismiss-alert -id <alert-id>

  Removes an alert from the coin that owns it. The server-side history is
  untouched.
`
}

func (c *dismissAlertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the alert, as shown by alerts.")
}

func (c *dismissAlertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	if err := eng.DismissAlert(c.id); err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	fmt.Printf("Dismissed alert %s\n", c.id)
	return subcommands.ExitSuccess
}

type setDeviceTokenCmd struct {
	token string
}

func (*setDeviceTokenCmd) Name() string     { return "set-device-token" }
func (*setDeviceTokenCmd) Synopsis() string { return "record the push token for this install" }
func (*setDeviceTokenCmd) Usage() string {
	return `wenmoon set-device-token -token <token>

  Records the device token the alert service identifies this install by.
  sync-alerts sends it with every request.
`
}

func (c *setDeviceTokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.token, "token", "", "Device token issued by the push provider.")
}

func (c *setDeviceTokenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.token == "" {
		fmt.Fprintln(os.Stderr, "Error: -token is required.")
		return subcommands.ExitUsageError
	}

	eng, err := openEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}

	if err := eng.SetDeviceToken(c.token); err != nil {
		fmt.Fprintln(os.Stderr, wenmoon.UserMessage(err))
		return subcommands.ExitFailure
	}
	fmt.Println("Device token saved")
	return subcommands.ExitSuccess
}
