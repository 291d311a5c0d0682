package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appboardguru/boardguru/pkg/model"
	storegorm "github.com/appboardguru/boardguru/pkg/server/store/gorm"
)

// userCreateAdminCmd represents the user create-admin command
var userCreateAdminCmd = &cobra.Command{
	Use:   "create-admin <email>",
	Short: "Create a platform administrator",
	Long: `Create a platform administrator.

Platform administrators review registration requests and bypass
organization role checks. The registration flow needs at least one, so
this command is the way to bootstrap a fresh installation.

A temporary password is printed to stdout.

Example:
  boardctl user create-admin admin@example.com
  boardctl user create-admin admin@example.com --name "Site Admin"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = email
		}

		password, err := createAdmin(email, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create admin: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created platform admin '%s'\n", email)
		fmt.Printf("Temporary password: %s\n", password)
	},
}

func init() {
	userCmd.AddCommand(userCreateAdminCmd)
	userCreateAdminCmd.Flags().StringP("name", "n", "", "Full name (default: the email address)")
}

func createAdmin(email, name string) (string, error) {
	database, _, err := openDatabase()
	if err != nil {
		return "", err
	}

	users := storegorm.NewUsersStore(database)

	password := model.GenerateToken()[:20]
	user := &model.User{
		Email:         email,
		FullName:      name,
		PlatformAdmin: true,
		Status:        model.UserStatusActive,
	}
	if err := user.SetPassword(password); err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := users.CreateUser(user); err != nil {
		return "", err
	}

	return password, nil
}
