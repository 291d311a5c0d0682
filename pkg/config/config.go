package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/boardguru/config"
	ConfigFileName    = "boardguru.yml"
)

// Config holds all BoardGuru configuration settings
type Config struct {
	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// APIListLimitMax is the maximum number of results for listing requests
	APIListLimitMax int `yaml:"api_list_limit_max" json:"api_list_limit_max"`

	// SessionTokenTTL is the TTL for session tokens in seconds
	SessionTokenTTL int `yaml:"session_token_ttl" json:"session_token_ttl"`

	// RegistrationTokenTTL is the TTL for registration approval tokens in seconds
	RegistrationTokenTTL int `yaml:"registration_token_ttl" json:"registration_token_ttl"`

	// RegistrationsEnabled enables the public registration endpoint
	RegistrationsEnabled bool `yaml:"registrations_enabled" json:"registrations_enabled"`

	// BaseURL is the externally reachable URL used in emailed links.
	// Approval links are always built from this value, never from the
	// incoming request host.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// SMTPAddress is the host:port of the SMTP relay
	SMTPAddress string `yaml:"smtp_address" json:"smtp_address"`

	// SMTPFrom is the From address for transactional email
	SMTPFrom string `yaml:"smtp_from" json:"smtp_from"`

	// RedisURL enables the Redis cache when set
	RedisURL string `yaml:"redis_url" json:"redis_url"`

	// MeetingReminderLeadMinutes is how long before a meeting reminders go out
	MeetingReminderLeadMinutes int `yaml:"meeting_reminder_lead_minutes" json:"meeting_reminder_lead_minutes"`

	// MaxUploadBytes caps asset upload size
	MaxUploadBytes int64 `yaml:"max_upload_bytes" json:"max_upload_bytes"`

	// AuthRatePerMinute limits unauthenticated requests per client per minute
	AuthRatePerMinute int `yaml:"auth_rate_per_minute" json:"auth_rate_per_minute"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		TrustedProxies:             []string{},
		APIListLimitMax:            100,
		SessionTokenTTL:            28800,
		RegistrationTokenTTL:       259200,
		RegistrationsEnabled:       true,
		BaseURL:                    "http://localhost:8000",
		MeetingReminderLeadMinutes: 30,
		MaxUploadBytes:             50 << 20,
		AuthRatePerMinute:          30,
		sources:                    make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("BOARDGURU_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		var overrides fileOverrides
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig, &overrides)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"trusted_proxies", "api_list_limit_max", "session_token_ttl",
		"registration_token_ttl", "registrations_enabled", "base_url",
		"smtp_address", "smtp_from", "redis_url",
		"meeting_reminder_lead_minutes", "max_upload_bytes",
		"auth_rate_per_minute",
	}
}

// fileOverrides holds attributes whose zero value is a real setting.
// Pointer fields distinguish "absent from the file" from "set to the
// zero value", which the != zero checks below cannot.
type fileOverrides struct {
	RegistrationsEnabled *bool `yaml:"registrations_enabled"`
}

func (c *Config) applyFileConfig(file *Config, overrides *fileOverrides) {
	if overrides.RegistrationsEnabled != nil {
		c.RegistrationsEnabled = *overrides.RegistrationsEnabled
		c.sources["registrations_enabled"] = "file"
	}
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.APIListLimitMax != 0 {
		c.APIListLimitMax = file.APIListLimitMax
		c.sources["api_list_limit_max"] = "file"
	}
	if file.SessionTokenTTL != 0 {
		c.SessionTokenTTL = file.SessionTokenTTL
		c.sources["session_token_ttl"] = "file"
	}
	if file.RegistrationTokenTTL != 0 {
		c.RegistrationTokenTTL = file.RegistrationTokenTTL
		c.sources["registration_token_ttl"] = "file"
	}
	if file.BaseURL != "" {
		c.BaseURL = file.BaseURL
		c.sources["base_url"] = "file"
	}
	if file.SMTPAddress != "" {
		c.SMTPAddress = file.SMTPAddress
		c.sources["smtp_address"] = "file"
	}
	if file.SMTPFrom != "" {
		c.SMTPFrom = file.SMTPFrom
		c.sources["smtp_from"] = "file"
	}
	if file.RedisURL != "" {
		c.RedisURL = file.RedisURL
		c.sources["redis_url"] = "file"
	}
	if file.MeetingReminderLeadMinutes != 0 {
		c.MeetingReminderLeadMinutes = file.MeetingReminderLeadMinutes
		c.sources["meeting_reminder_lead_minutes"] = "file"
	}
	if file.MaxUploadBytes != 0 {
		c.MaxUploadBytes = file.MaxUploadBytes
		c.sources["max_upload_bytes"] = "file"
	}
	if file.AuthRatePerMinute != 0 {
		c.AuthRatePerMinute = file.AuthRatePerMinute
		c.sources["auth_rate_per_minute"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("BOARDGURU_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("BOARDGURU_API_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.APIListLimitMax = i
			c.sources["api_list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("BOARDGURU_SESSION_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionTokenTTL = i
			c.sources["session_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("BOARDGURU_REGISTRATION_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.RegistrationTokenTTL = i
			c.sources["registration_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("BOARDGURU_REGISTRATIONS_ENABLED"); val != "" {
		c.RegistrationsEnabled = val == "true" || val == "1"
		c.sources["registrations_enabled"] = "environment"
	}
	if val := os.Getenv("BOARDGURU_BASE_URL"); val != "" {
		c.BaseURL = val
		c.sources["base_url"] = "environment"
	}
	if val := os.Getenv("BOARDGURU_SMTP_ADDRESS"); val != "" {
		c.SMTPAddress = val
		c.sources["smtp_address"] = "environment"
	}
	if val := os.Getenv("BOARDGURU_SMTP_FROM"); val != "" {
		c.SMTPFrom = val
		c.sources["smtp_from"] = "environment"
	}
	if val := os.Getenv("BOARDGURU_REDIS_URL"); val != "" {
		c.RedisURL = val
		c.sources["redis_url"] = "environment"
	}
	if val := os.Getenv("BOARDGURU_MEETING_REMINDER_LEAD_MINUTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.MeetingReminderLeadMinutes = i
			c.sources["meeting_reminder_lead_minutes"] = "environment"
		}
	}
	if val := os.Getenv("BOARDGURU_MAX_UPLOAD_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.MaxUploadBytes = i
			c.sources["max_upload_bytes"] = "environment"
		}
	}
	if val := os.Getenv("BOARDGURU_AUTH_RATE_PER_MINUTE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.AuthRatePerMinute = i
			c.sources["auth_rate_per_minute"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// SessionTTL returns the session token TTL as a duration
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTokenTTL) * time.Second
}

// RegistrationTTL returns the registration token TTL as a duration
func (c *Config) RegistrationTTL() time.Duration {
	return time.Duration(c.RegistrationTokenTTL) * time.Second
}

// ReminderLead returns the meeting reminder lead time as a duration
func (c *Config) ReminderLead() time.Duration {
	return time.Duration(c.MeetingReminderLeadMinutes) * time.Minute
}

// ApprovalURL builds the emailed registration approval link for a token
func (c *Config) ApprovalURL(token string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/registrations/approve?token=" + url.QueryEscape(token)
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *Config) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Try as plain IP
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid base_url value: %s", c.BaseURL)
	}

	if c.MeetingReminderLeadMinutes < 1 {
		return fmt.Errorf("meeting_reminder_lead_minutes must be positive")
	}

	if c.MaxUploadBytes < 1 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "api_list_limit_max", Value: strconv.Itoa(c.APIListLimitMax), Source: c.Source("api_list_limit_max")},
		{Name: "session_token_ttl", Value: strconv.Itoa(c.SessionTokenTTL), Source: c.Source("session_token_ttl")},
		{Name: "registration_token_ttl", Value: strconv.Itoa(c.RegistrationTokenTTL), Source: c.Source("registration_token_ttl")},
		{Name: "registrations_enabled", Value: strconv.FormatBool(c.RegistrationsEnabled), Source: c.Source("registrations_enabled")},
		{Name: "base_url", Value: c.BaseURL, Source: c.Source("base_url")},
		{Name: "smtp_address", Value: c.SMTPAddress, Source: c.Source("smtp_address")},
		{Name: "smtp_from", Value: c.SMTPFrom, Source: c.Source("smtp_from")},
		{Name: "redis_url", Value: c.RedisURL, Source: c.Source("redis_url")},
		{Name: "meeting_reminder_lead_minutes", Value: strconv.Itoa(c.MeetingReminderLeadMinutes), Source: c.Source("meeting_reminder_lead_minutes")},
		{Name: "max_upload_bytes", Value: strconv.FormatInt(c.MaxUploadBytes, 10), Source: c.Source("max_upload_bytes")},
		{Name: "auth_rate_per_minute", Value: strconv.Itoa(c.AuthRatePerMinute), Source: c.Source("auth_rate_per_minute")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-34s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-34s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-34s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
