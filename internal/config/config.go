// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// ErrCredentialUnavailable is returned when the access token file is
// missing, unreadable, or empty.
var ErrCredentialUnavailable = errors.New("credential unavailable")

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Graph   GraphConfig   `yaml:"graph"`
	Monitor MonitorConfig `yaml:"monitor"`
	Email   EmailConfig   `yaml:"email"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// GraphConfig defines Graph API settings.
type GraphConfig struct {
	BaseURL         string          `yaml:"base_url"`
	CredentialsFile string          `yaml:"credentials_file"`
	Timeout         time.Duration   `yaml:"timeout"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines Graph API rate limiting settings.
type RateLimitConfig struct {
	PerSecond   float64 `yaml:"per_second"`
	Burst       int     `yaml:"burst"`
	HourlyLimit int64   `yaml:"hourly_limit"` // 0 means unlimited
}

// MonitorConfig defines the groups and criteria the monitor polls with.
// CheckInterval is expressed in seconds.
type MonitorConfig struct {
	Groups         []string `yaml:"groups"`
	MinPrice       int      `yaml:"min_price"`
	MaxPrice       int      `yaml:"max_price"`
	Keywords       []string `yaml:"keywords"`
	CheckInterval  int      `yaml:"check_interval"`
	Schedule       string   `yaml:"schedule"` // cron expression, overrides check_interval
	RunImmediately bool     `yaml:"run_immediately"`
	Autostart      bool     `yaml:"autostart"`
}

// EmailConfig defines SMTP notification settings.
type EmailConfig struct {
	Sender     string        `yaml:"sender"`
	Receiver   string        `yaml:"receiver"`
	SMTPServer string        `yaml:"smtp_server"`
	SMTPPort   int           `yaml:"smtp_port"`
	Password   string        `yaml:"password"`
	Timeout    time.Duration `yaml:"timeout"`
	DryRun     bool          `yaml:"dry_run"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
	File   string `yaml:"file"`   // optional append-only log file
}

// Settings returns the monitor settings described by the monitor and email
// sections.
func (c *Config) Settings() domain.Settings {
	return domain.Settings{
		Groups: append([]string(nil), c.Monitor.Groups...),
		Criteria: domain.Criteria{
			MinPrice: c.Monitor.MinPrice,
			MaxPrice: c.Monitor.MaxPrice,
			Keywords: append([]string(nil), c.Monitor.Keywords...),
		},
		EmailSender:    c.Email.Sender,
		EmailReceiver:  c.Email.Receiver,
		SMTPServer:     c.Email.SMTPServer,
		SMTPPort:       c.Email.SMTPPort,
		EmailPassword:  c.Email.Password,
		CheckInterval:  time.Duration(c.Monitor.CheckInterval) * time.Second,
		Schedule:       c.Monitor.Schedule,
		RunImmediately: c.Monitor.RunImmediately,
	}
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadAccessToken reads the credential file and returns its trimmed
// contents. Every failure wraps ErrCredentialUnavailable.
func LoadAccessToken(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // credential path from trusted config
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", ErrCredentialUnavailable, path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrCredentialUnavailable, path)
	}
	return token, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyGraphDefaults(&cfg.Graph)
	applyMonitorDefaults(&cfg.Monitor)
	applyEmailDefaults(&cfg.Email)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyGraphDefaults(g *GraphConfig) {
	if g.BaseURL == "" {
		g.BaseURL = "https://graph.facebook.com/v12.0"
	}
	if g.CredentialsFile == "" {
		g.CredentialsFile = "creds.txt"
	}
	if g.Timeout == 0 {
		g.Timeout = 30 * time.Second
	}
	applyRateLimitDefaults(&g.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
}

func applyMonitorDefaults(m *MonitorConfig) {
	if m.CheckInterval == 0 {
		m.CheckInterval = int(domain.DefaultCheckInterval / time.Second)
	}
}

func applyEmailDefaults(e *EmailConfig) {
	if e.SMTPServer == "" {
		e.SMTPServer = domain.DefaultSMTPServer
	}
	if e.SMTPPort == 0 {
		e.SMTPPort = domain.DefaultSMTPPort
	}
	if e.Timeout == 0 {
		e.Timeout = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

// validate checks the sections needed to serve. Monitor settings are only
// required up front when autostart is enabled; otherwise they arrive with
// each start request and are validated there.
func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}
	if !strings.HasPrefix(cfg.Graph.BaseURL, "http://") && !strings.HasPrefix(cfg.Graph.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("graph.base_url must be an http(s) URL (got %q)", cfg.Graph.BaseURL))
	}
	if cfg.Graph.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("graph.rate_limit.per_second must not be negative"))
	}
	if cfg.Graph.RateLimit.HourlyLimit < 0 {
		errs = append(errs, fmt.Errorf("graph.rate_limit.hourly_limit must not be negative"))
	}
	if cfg.Monitor.CheckInterval < 0 {
		errs = append(errs, fmt.Errorf("monitor.check_interval must be positive (got %d)", cfg.Monitor.CheckInterval))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	if cfg.Monitor.Autostart {
		s := cfg.Settings()
		if err := s.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("monitor (autostart): %w", err))
		}
	}

	return errors.Join(errs...)
}
