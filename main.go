package main

import (
	"os"

	"github.com/civo/action-civo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Execute has already reported the error
		os.Exit(1)
	}
}
