// Package main is the entry point for the group-post-monitor daemon.
package main

import (
	"os"

	"github.com/donaldgifford/group-post-monitor/cmd/group-post-monitor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
