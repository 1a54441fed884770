// Package main is the entry point for the gpm CLI client.
package main

import (
	"github.com/donaldgifford/group-post-monitor/cmd/gpm/cmd"
)

func main() {
	cmd.Execute()
}
