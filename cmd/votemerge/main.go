// Package main provides the entry point for the votemerge CLI tool.
package main

import (
	"github.com/siamvotes/votemerge/cmd/votemerge/cmd"
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
