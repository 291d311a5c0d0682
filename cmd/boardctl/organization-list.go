package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	storegorm "github.com/appboardguru/boardguru/pkg/server/store/gorm"
)

// organizationListCmd represents the organization list command
var organizationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizations",
	Long: `List all organizations.

Example:
  boardctl organization list
  boardctl organization list --limit 10`,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		if err := listOrganizations(limit, offset); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list organizations: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	organizationCmd.AddCommand(organizationListCmd)
	organizationListCmd.Flags().Int("limit", 100, "Maximum number of organizations to list")
	organizationListCmd.Flags().Int("offset", 0, "Number of organizations to skip")
}

func listOrganizations(limit, offset int) error {
	database, _, err := openDatabase()
	if err != nil {
		return err
	}

	organizations := storegorm.NewOrganizationsStore(database)

	orgs, count, err := organizations.ListOrganizations(limit, offset)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSLUG\tSTATUS\tCREATED")
	for _, org := range orgs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			org.ID, org.Name, org.Slug, org.Status, org.CreatedAt.Format("2006-01-02"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d of %d organizations\n", len(orgs), count)
	return nil
}
