// Package main implements the stepsight CLI.
// It renders debugger execution snapshots into control-flow-graph and
// highlighted-source panes, and can serve them over HTTP.
package main

import (
	"os"

	"github.com/stepsight/stepsight/cmd/stepsight/commands"
)

var version = "dev"

func main() {
	commands.RootCmd.Version = version
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
