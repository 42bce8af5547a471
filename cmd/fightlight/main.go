package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
