package main

import (
	"os"

	"github.com/abhisek/learnbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
