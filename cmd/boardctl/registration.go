package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// registrationCmd represents the registration command
var registrationCmd = &cobra.Command{
	Use:   "registration",
	Short: "Manage registration requests",
	Long:  `Review registration requests from the command line.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'registration' requires a subcommand (list, approve, reject)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(registrationCmd)
}
