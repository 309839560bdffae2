package main

import (
	"fmt"
	"os"

	"github.com/Badsnus/qr-crafter-bot/internal/adapters/controller/cli"

	_ "time/tzdata"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
