package main

import (
	"os"

	"github.com/availops/availagent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
