package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	storegorm "github.com/appboardguru/boardguru/pkg/server/store/gorm"
)

// registrationListCmd represents the registration list command
var registrationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registration requests",
	Long: `List registration requests.

By default only pending requests are shown. Use --status to filter by a
different status, or --status "" for all.

Example:
  boardctl registration list
  boardctl registration list --status rejected`,
	Run: func(cmd *cobra.Command, args []string) {
		status, _ := cmd.Flags().GetString("status")

		if err := listRegistrations(status); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list registrations: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	registrationCmd.AddCommand(registrationListCmd)
	registrationListCmd.Flags().StringP("status", "s", "pending", "Filter by status (pending, approved, rejected, expired)")
}

func listRegistrations(status string) error {
	database, _, err := openDatabase()
	if err != nil {
		return err
	}

	registrations := storegorm.NewRegistrationsStore(database)

	requests, total, err := registrations.ListRequests(status, 100, 0)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tSTATUS\tEXPIRES")
	for _, req := range requests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			req.ID, req.Email, req.FullName, req.Status,
			req.Expiration.Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d request(s)\n", total)
	return nil
}
