package integration

import (
	"fmt"
	"net/url"
	"time"

	"github.com/cucumber/godog"

	"github.com/appboardguru/boardguru/pkg/model"
)

func (s *StepsContext) registerRegistrationSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I submit a registration request for "([^"]*)" named "([^"]*)"$`, s.iSubmitARegistrationRequest)
	sc.Step(`^a pending registration for "([^"]*)" exists$`, s.aPendingRegistrationExists)
	sc.Step(`^an expired registration for "([^"]*)" exists$`, s.anExpiredRegistrationExists)
	sc.Step(`^I open the approval link for "([^"]*)"$`, s.iOpenTheApprovalLink)
	sc.Step(`^I reject the registration for "([^"]*)"$`, s.iRejectTheRegistration)
	sc.Step(`^user "([^"]*)" should exist$`, s.userShouldExist)
	sc.Step(`^user "([^"]*)" should not exist$`, s.userShouldNotExist)
	sc.Step(`^the registration for "([^"]*)" should be "([^"]*)"$`, s.theRegistrationShouldBe)
}

func (s *StepsContext) iSubmitARegistrationRequest(email, name string) error {
	return s.doJSON("POST", "/registrations", map[string]string{
		"email":     email,
		"full_name": name,
	})
}

func (s *StepsContext) aPendingRegistrationExists(email string) error {
	return s.seedRegistration(email, time.Now().Add(72*time.Hour))
}

func (s *StepsContext) anExpiredRegistrationExists(email string) error {
	return s.seedRegistration(email, time.Now().Add(-time.Hour))
}

// seedRegistration inserts a pending request directly, keeping the plain
// approval token in the scenario state. Submission over the API only
// ever reveals the token by email.
func (s *StepsContext) seedRegistration(email string, expiration time.Time) error {
	token := model.GenerateToken()
	s.regTokens[email] = token

	return s.tc.DB.Exec(`
		INSERT INTO registration_requests (id, email, full_name, token_sha256, status, expiration)
		VALUES (gen_random_uuid(), ?, ?, ?, 'pending', ?)
	`, email, email, model.HashToken(token), expiration).Error
}

func (s *StepsContext) iOpenTheApprovalLink(email string) error {
	token, ok := s.regTokens[email]
	if !ok {
		return fmt.Errorf("no stored approval token for %s", email)
	}
	return s.doJSON("GET", "/registrations/approve?token="+url.QueryEscape(token), nil)
}

func (s *StepsContext) iRejectTheRegistration(email string) error {
	var id string
	if err := s.tc.DB.Raw(
		`SELECT id FROM registration_requests WHERE email = ? ORDER BY created_at DESC LIMIT 1`, email,
	).Scan(&id).Error; err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("no registration request for %s", email)
	}

	return s.doJSON("POST", "/registrations/"+id+"/reject", map[string]string{
		"reason": "not a board member",
	})
}

func (s *StepsContext) userShouldExist(email string) error {
	var count int64
	if err := s.tc.DB.Raw(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("user %s does not exist", email)
	}
	return nil
}

func (s *StepsContext) userShouldNotExist(email string) error {
	var count int64
	if err := s.tc.DB.Raw(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count).Error; err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("user %s exists", email)
	}
	return nil
}

func (s *StepsContext) theRegistrationShouldBe(email, status string) error {
	var actual string
	if err := s.tc.DB.Raw(
		`SELECT status FROM registration_requests WHERE email = ? ORDER BY created_at DESC LIMIT 1`, email,
	).Scan(&actual).Error; err != nil {
		return err
	}
	if actual != status {
		return fmt.Errorf("expected registration for %s to be %s, got %s", email, status, actual)
	}
	return nil
}
