package main

import (
	"os"

	"MarketMood/cmd/mood/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
