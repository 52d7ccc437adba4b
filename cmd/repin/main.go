// Package main is the entry point for the repin CLI.
package main

import (
	"os"

	"github.com/repin-dev/repin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
