package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	storegorm "github.com/appboardguru/boardguru/pkg/server/store/gorm"
)

// organizationExportCmd represents the organization export command
var organizationExportCmd = &cobra.Command{
	Use:   "export <org_id>",
	Short: "Export an organization as JSON",
	Long: `Export an organization as JSON.

The export contains the organization record plus its members, vaults,
assets and meetings. Document contents are not included.

Example:
  boardctl organization export 7c1f... > org.json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		orgID := args[0]

		if err := exportOrganization(orgID); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to export %s: %v\n", orgID, err)
			os.Exit(1)
		}
	},
}

func init() {
	organizationCmd.AddCommand(organizationExportCmd)
}

func exportOrganization(orgID string) error {
	database, _, err := openDatabase()
	if err != nil {
		return err
	}

	organizations := storegorm.NewOrganizationsStore(database)

	export, err := organizations.ExportOrganization(orgID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}
