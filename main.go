package main

import (
	"os"

	"github.com/abhisek/arithtrainer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
