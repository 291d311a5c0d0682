package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appboardguru/boardguru/pkg/model"
	storegorm "github.com/appboardguru/boardguru/pkg/server/store/gorm"
)

// userResetPasswordCmd represents the user reset-password command
var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <email>",
	Short: "Reset a user's password",
	Long: `Reset the password for a user account.

The new temporary password is printed to stdout. Existing session tokens
stay valid until they expire; rotate the signing key with
'boardctl auth-key rotate' to revoke them immediately.

Example:
  boardctl user reset-password alice@example.com`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]

		password, err := resetUserPassword(email)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset password for %s: %v\n", email, err)
			os.Exit(1)
		}
		fmt.Println(password)
	},
}

func init() {
	userCmd.AddCommand(userResetPasswordCmd)
}

func resetUserPassword(email string) (string, error) {
	database, _, err := openDatabase()
	if err != nil {
		return "", err
	}

	users := storegorm.NewUsersStore(database)

	user, err := users.FindUserByEmail(email)
	if err != nil {
		return "", err
	}

	password := model.GenerateToken()[:20]
	if err := user.SetPassword(password); err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := users.SaveUser(user); err != nil {
		return "", fmt.Errorf("failed to save user: %w", err)
	}

	return password, nil
}
