package main

import (
	"context"
	"os"

	"vr-therapy-platform/cmd/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)

	if err := commands.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
