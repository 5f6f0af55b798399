package main

import (
	"os"

	"github.com/nhath/ducky/cmd/ducky/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
