package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appboardguru/boardguru/pkg/model"
	storegorm "github.com/appboardguru/boardguru/pkg/server/store/gorm"
)

// registrationRejectCmd represents the registration reject command
var registrationRejectCmd = &cobra.Command{
	Use:   "reject <request_id>",
	Short: "Reject a registration request",
	Long: `Reject a pending registration request.

Example:
  boardctl registration reject 2f8d0c4e-...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requestID := args[0]

		if err := rejectRegistration(requestID); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reject %s: %v\n", requestID, err)
			os.Exit(1)
		}

		fmt.Println("Rejected")
	},
}

func init() {
	registrationCmd.AddCommand(registrationRejectCmd)
}

func rejectRegistration(requestID string) error {
	database, _, err := openDatabase()
	if err != nil {
		return err
	}

	registrations := storegorm.NewRegistrationsStore(database)

	request, err := registrations.FindRequestByID(requestID)
	if err != nil {
		return err
	}
	if !request.IsPending() {
		return fmt.Errorf("request is already %s", request.Status)
	}

	return registrations.MarkReviewed(request.ID, model.RegistrationStatusRejected, "")
}
