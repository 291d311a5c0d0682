package integration

import (
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

func (s *StepsContext) registerOrganizationSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I create an organization named "([^"]*)"$`, s.iCreateAnOrganization)
	sc.Step(`^I create a vault named "([^"]*)" in the organization$`, s.iCreateAVault)
	sc.Step(`^I activate the vault$`, s.iActivateTheVault)
	sc.Step(`^I add member "([^"]*)" with role "([^"]*)"$`, s.iAddMember)
	sc.Step(`^member "([^"]*)" should have role "([^"]*)"$`, s.memberShouldHaveRole)
}

func (s *StepsContext) iCreateAnOrganization(name string) error {
	if err := s.doJSON("POST", "/organizations", map[string]string{"name": name}); err != nil {
		return err
	}

	if s.response.StatusCode < 300 {
		var org struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(s.responseBody, &org); err == nil {
			s.orgID = org.ID
		}
	}
	return nil
}

func (s *StepsContext) iCreateAVault(name string) error {
	if s.orgID == "" {
		return fmt.Errorf("no organization created yet")
	}

	if err := s.doJSON("POST", "/organizations/"+s.orgID+"/vaults", map[string]string{"name": name}); err != nil {
		return err
	}

	if s.response.StatusCode < 300 {
		var vault struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(s.responseBody, &vault); err == nil {
			s.vaultID = vault.ID
		}
	}
	return nil
}

func (s *StepsContext) iActivateTheVault() error {
	if s.vaultID == "" {
		return fmt.Errorf("no vault created yet")
	}
	return s.doJSON("POST", "/organizations/"+s.orgID+"/vaults/"+s.vaultID+"/status",
		map[string]string{"status": "active"})
}

func (s *StepsContext) iAddMember(email, role string) error {
	var userID string
	if err := s.tc.DB.Raw(`SELECT id FROM users WHERE email = ?`, email).Scan(&userID).Error; err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("user %s does not exist", email)
	}

	return s.doJSON("POST", "/organizations/"+s.orgID+"/members", map[string]string{
		"user_id": userID,
		"role":    role,
	})
}

func (s *StepsContext) memberShouldHaveRole(email, role string) error {
	var actual string
	if err := s.tc.DB.Raw(`
		SELECT m.role FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.organization_id = ? AND u.email = ?
	`, s.orgID, email).Scan(&actual).Error; err != nil {
		return err
	}
	if actual != role {
		return fmt.Errorf("expected %s to have role %s, got %q", email, role, actual)
	}
	return nil
}
