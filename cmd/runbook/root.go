package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "runbook",
	Short: "Operational runbook parser and linter",
	Long:  `A tool for parsing and linting the operational runbooks under docs/runbooks.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
