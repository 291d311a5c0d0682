package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/appboardguru/boardguru/pkg/model"
	storegorm "github.com/appboardguru/boardguru/pkg/server/store/gorm"
)

const demoOrgSlug = "demo-board"

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data for test environments",
	Long: `Load demo data for test environments.

Creates a demo organization with a chair and two directors, an active
board-pack vault, and a meeting scheduled one week out with all members
invited. Passwords for the demo users are printed to stdout.

Running seed against a database that already has the demo organization
is an error.

Example:
  boardctl seed`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := seedDemoData(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed demo data: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seedDemoData() error {
	database, _, err := openDatabase()
	if err != nil {
		return err
	}

	users := storegorm.NewUsersStore(database)
	organizations := storegorm.NewOrganizationsStore(database)
	vaults := storegorm.NewVaultsStore(database)
	meetings := storegorm.NewMeetingsStore(database)

	if _, err := organizations.FindOrganizationBySlug(demoOrgSlug); err == nil {
		return fmt.Errorf("demo organization %q already exists", demoOrgSlug)
	}

	seedUsers := []struct {
		email string
		name  string
		role  string
	}{
		{"chair@demo.boardguru.local", "Alex Chair", model.RoleOwner},
		{"director1@demo.boardguru.local", "Dana Director", model.RoleMember},
		{"director2@demo.boardguru.local", "Sam Director", model.RoleMember},
	}

	var memberIDs []string
	var chair *model.User
	for _, su := range seedUsers {
		password := model.GenerateToken()[:20]
		user := &model.User{
			Email:    su.email,
			FullName: su.name,
			Status:   model.UserStatusActive,
		}
		if err := user.SetPassword(password); err != nil {
			return err
		}
		if err := users.CreateUser(user); err != nil {
			return fmt.Errorf("create %s: %w", su.email, err)
		}
		memberIDs = append(memberIDs, user.ID)
		if chair == nil {
			chair = user
		}
		fmt.Printf("Created user %s (password: %s)\n", user.Email, password)
	}

	org := &model.Organization{
		Name:        "Demo Board",
		Slug:        demoOrgSlug,
		Description: "Seeded demo organization",
		Status:      model.OrgStatusActive,
		CreatedBy:   chair.ID,
	}
	if err := organizations.CreateOrganization(org, chair.ID); err != nil {
		return err
	}
	for _, su := range seedUsers[1:] {
		user, err := users.FindUserByEmail(su.email)
		if err != nil {
			return err
		}
		if err := organizations.AddMember(org.ID, user.ID, su.role); err != nil {
			return err
		}
	}
	fmt.Printf("Created organization %s (%s)\n", org.ID, org.Name)

	vault := &model.Vault{
		OrganizationID: org.ID,
		Name:           "Q3 Board Pack",
		Description:    "Seeded board pack",
		Status:         model.VaultStatusActive,
		CreatedBy:      chair.ID,
	}
	if err := vaults.CreateVault(vault); err != nil {
		return err
	}
	fmt.Printf("Created vault %s (%s)\n", vault.ID, vault.Name)

	meeting := &model.Meeting{
		OrganizationID:  org.ID,
		VaultID:         &vault.ID,
		Title:           "Q3 Board Meeting",
		Agenda:          "1. Minutes\n2. Financials\n3. AOB",
		ScheduledAt:     time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Hour),
		DurationMinutes: 90,
		Status:          model.MeetingStatusScheduled,
		CreatedBy:       chair.ID,
	}
	if err := meetings.CreateMeeting(meeting, memberIDs); err != nil {
		return err
	}
	fmt.Printf("Created meeting %s (%s)\n", meeting.ID, meeting.Title)

	return nil
}
