package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appboardguru/boardguru/pkg/model"
	storegorm "github.com/appboardguru/boardguru/pkg/server/store/gorm"
)

// organizationCreateCmd represents the organization create command
var organizationCreateCmd = &cobra.Command{
	Use:   "create <name> --owner <email>",
	Short: "Create an organization",
	Long: `Create an organization.

The user given with --owner must already exist and becomes the
organization's owner. The slug is derived from the name unless --slug
is given.

Example:
  boardctl organization create "Acme Board" --owner root@example.com`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		ownerEmail, _ := cmd.Flags().GetString("owner")
		slug, _ := cmd.Flags().GetString("slug")
		description, _ := cmd.Flags().GetString("description")

		if ownerEmail == "" {
			fmt.Fprintln(os.Stderr, "error: --owner is required")
			os.Exit(1)
		}

		if err := createOrganization(name, slug, description, ownerEmail); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create organization: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	organizationCmd.AddCommand(organizationCreateCmd)
	organizationCreateCmd.Flags().String("owner", "", "Email of the owning user (required)")
	organizationCreateCmd.Flags().String("slug", "", "URL slug (derived from the name when omitted)")
	organizationCreateCmd.Flags().String("description", "", "Organization description")
}

func createOrganization(name, slug, description, ownerEmail string) error {
	database, _, err := openDatabase()
	if err != nil {
		return err
	}

	users := storegorm.NewUsersStore(database)
	organizations := storegorm.NewOrganizationsStore(database)

	owner, err := users.FindUserByEmail(ownerEmail)
	if err != nil {
		return fmt.Errorf("owner %s: %w", ownerEmail, err)
	}

	org := &model.Organization{
		Name:        name,
		Slug:        slug,
		Description: description,
		Status:      model.OrgStatusActive,
		CreatedBy:   owner.ID,
	}
	if err := organizations.CreateOrganization(org, owner.ID); err != nil {
		return err
	}

	fmt.Printf("Created organization %s\n", org.ID)
	fmt.Printf("Slug: %s\n", org.Slug)
	fmt.Printf("Owner: %s\n", owner.Email)
	return nil
}
