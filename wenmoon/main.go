// Command wenmoon is the CLI crypto portfolio tracker.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/artkachenko/wenmoon/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
