package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// organizationCmd represents the organization command
var organizationCmd = &cobra.Command{
	Use:   "organization",
	Short: "Manage organizations",
	Long:  `Manage organizations.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'organization' requires a subcommand (create, list, delete, export)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(organizationCmd)
}
