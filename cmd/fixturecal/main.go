// Package main provides the entry point for the fixturecal CLI tool.
package main

import "github.com/fixturecal/fixturecal/cmd/fixturecal/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
