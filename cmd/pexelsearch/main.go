package main

import (
	"os"

	"pexelsearch/pkg/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ui.NewPrinter(os.Stderr).Error("Error", err)
		os.Exit(1)
	}
}
