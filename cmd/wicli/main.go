// Package main provides the entry point for the wicli CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/wicli/cmd/wicli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
