package main

import (
	"os"

	"github.com/goliatone/go-formkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
