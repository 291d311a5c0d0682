package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	storegorm "github.com/appboardguru/boardguru/pkg/server/store/gorm"
)

// organizationDeleteCmd represents the organization delete command
var organizationDeleteCmd = &cobra.Command{
	Use:   "delete <org_id>",
	Short: "Delete an organization",
	Long: `Delete an organization and its memberships.

Vaults, assets and meetings belonging to the organization are NOT
removed; export the organization first if you need its data.

Example:
  boardctl organization delete 7c1f...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		orgID := args[0]

		if err := deleteOrganization(orgID); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete %s: %v\n", orgID, err)
			os.Exit(1)
		}
	},
}

func init() {
	organizationCmd.AddCommand(organizationDeleteCmd)
}

func deleteOrganization(orgID string) error {
	database, _, err := openDatabase()
	if err != nil {
		return err
	}

	organizations := storegorm.NewOrganizationsStore(database)

	org, err := organizations.FindOrganization(orgID)
	if err != nil {
		return err
	}

	if err := organizations.DeleteOrganization(org.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted organization %s (%s)\n", org.ID, org.Name)
	return nil
}
