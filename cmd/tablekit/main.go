// Package main provides the entry point for the tablekit CLI tool.
package main

import (
	"github.com/tablekit/tablekit/cmd/tablekit/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
