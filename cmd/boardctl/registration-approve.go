package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appboardguru/boardguru/pkg/model"
	storegorm "github.com/appboardguru/boardguru/pkg/server/store/gorm"
)

// registrationApproveCmd represents the registration approve command
var registrationApproveCmd = &cobra.Command{
	Use:   "approve <request_id>",
	Short: "Approve a registration request",
	Long: `Approve a registration request and create the user account.

Unlike the emailed approval link, this command works from the request id
shown by 'boardctl registration list', so it does not need the token.

The new user's temporary password is printed to stdout.

Example:
  boardctl registration approve 2f8d0c4e-...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requestID := args[0]

		password, email, err := approveRegistration(requestID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to approve %s: %v\n", requestID, err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Approved registration for %s\n", email)
		fmt.Printf("Temporary password: %s\n", password)
	},
}

func init() {
	registrationCmd.AddCommand(registrationApproveCmd)
}

func approveRegistration(requestID string) (password, email string, err error) {
	database, _, err := openDatabase()
	if err != nil {
		return "", "", err
	}

	registrations := storegorm.NewRegistrationsStore(database)
	users := storegorm.NewUsersStore(database)

	request, err := registrations.FindRequestByID(requestID)
	if err != nil {
		return "", "", err
	}

	if !request.IsPending() {
		return "", "", fmt.Errorf("request is already %s", request.Status)
	}
	if request.IsExpired() {
		_ = registrations.MarkReviewed(request.ID, model.RegistrationStatusExpired, "")
		return "", "", fmt.Errorf("request has expired")
	}

	tempPassword := model.GenerateToken()[:20]
	user := &model.User{
		Email:    request.Email,
		FullName: request.FullName,
		Status:   model.UserStatusActive,
	}
	if err := user.SetPassword(tempPassword); err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}
	if err := users.CreateUser(user); err != nil {
		return "", "", err
	}

	if err := registrations.MarkReviewed(request.ID, model.RegistrationStatusApproved, user.ID); err != nil {
		return "", "", fmt.Errorf("failed to record approval: %w", err)
	}

	return tempPassword, request.Email, nil
}
