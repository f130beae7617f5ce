// Package main provides the nativedb command.
package main

import (
	"os"

	"github.com/nativedb/nativedb/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
