package main

import (
	"os"

	"github.com/drake/gridsource/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
