// Package main provides the babble CLI.
//
// Usage:
//
//	babble [flags] <command> [args]
//
// Commands:
//
//	import   - import a corpus file for a speaker
//	babble   - generate sentences in a speaker's style
//	speakers - list speakers in the store
//	stats    - show corpus store statistics
//	remove   - delete a speaker's corpus
//
// The corpus store lives in a SQLite database (see config.json); trained
// models are rebuilt in memory on every run and never persisted.
package main

import (
	"fmt"
	"os"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
