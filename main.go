package main

import (
	"os"

	"github.com/casedesk/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
