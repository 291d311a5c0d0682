package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"

	"github.com/appboardguru/boardguru/pkg/model"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	regTokens    map[string]string // approval tokens by applicant email
	orgID        string
	vaultID      string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:        tc,
		regTokens: make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^a BoardGuru server is running$`, s.aServerIsRunning)
	sc.Step(`^a platform admin "([^"]*)" with password "([^"]*)" exists$`, s.aPlatformAdminExists)
	sc.Step(`^a user "([^"]*)" with password "([^"]*)" exists$`, s.aUserExists)

	// Authentication steps
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogInAs)
	sc.Step(`^I should receive a session token$`, s.iShouldReceiveASessionToken)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)

	s.registerRegistrationSteps(sc)
	s.registerOrganizationSteps(sc)
}

func (s *StepsContext) aServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) aPlatformAdminExists(email, password string) error {
	return s.createUser(email, password, true)
}

func (s *StepsContext) aUserExists(email, password string) error {
	return s.createUser(email, password, false)
}

func (s *StepsContext) createUser(email, password string, platformAdmin bool) error {
	user := &model.User{
		Email:         strings.ToLower(email),
		FullName:      email,
		PlatformAdmin: platformAdmin,
		Status:        model.UserStatusActive,
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}

	return s.tc.DB.Exec(`
		INSERT INTO users (id, email, full_name, password_digest, platform_admin, status)
		VALUES (gen_random_uuid(), ?, ?, ?, ?, 'active')
		ON CONFLICT DO NOTHING
	`, user.Email, user.FullName, user.PasswordDigest, platformAdmin).Error
}

// HTTP helpers

func (s *StepsContext) doJSON(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

// Authentication steps

func (s *StepsContext) iLogInAs(email, password string) error {
	s.authToken = ""
	if err := s.doJSON("POST", "/authn/login", map[string]string{
		"email":    email,
		"password": password,
	}); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusOK {
		var resp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(s.responseBody, &resp); err == nil {
			s.authToken = resp.Token
		}
	}
	return nil
}

func (s *StepsContext) iShouldReceiveASessionToken() error {
	if s.authToken == "" {
		return fmt.Errorf("no session token received: %s", string(s.responseBody))
	}
	// Session tokens are compact JWS: three dot-separated segments
	if len(strings.Split(s.authToken, ".")) != 3 {
		return fmt.Errorf("token is not a compact JWS: %s", s.authToken)
	}
	return nil
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseFieldShouldBe(field, expected string) error {
	var body map[string]any
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	actual, ok := body[field]
	if !ok {
		return fmt.Errorf("field %q not in response: %s", field, string(s.responseBody))
	}
	if fmt.Sprintf("%v", actual) != expected {
		return fmt.Errorf("expected %s=%q, got %q", field, expected, fmt.Sprintf("%v", actual))
	}
	return nil
}
