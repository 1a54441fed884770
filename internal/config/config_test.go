package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty config uses defaults",
			yaml: `{}`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "https://graph.facebook.com/v12.0", cfg.Graph.BaseURL)
				assert.Equal(t, "creds.txt", cfg.Graph.CredentialsFile)
				assert.Equal(t, 30*time.Second, cfg.Graph.Timeout)
				assert.InDelta(t, 5.0, cfg.Graph.RateLimit.PerSecond, 0.0001)
				assert.Equal(t, 10, cfg.Graph.RateLimit.Burst)
				assert.Equal(t, int64(0), cfg.Graph.RateLimit.HourlyLimit)
				assert.Equal(t, 60, cfg.Monitor.CheckInterval)
				assert.Equal(t, "smtp.gmail.com", cfg.Email.SMTPServer)
				assert.Equal(t, 587, cfg.Email.SMTPPort)
				assert.Equal(t, 30*time.Second, cfg.Email.Timeout)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
				assert.Empty(t, cfg.Logging.File)
			},
		},
		{
			name: "env var substitution",
			yaml: `
email:
  sender: me@example.com
  password: "${TEST_GPM_EMAIL_PASSWORD}"
`,
			envVars: map[string]string{
				"TEST_GPM_EMAIL_PASSWORD": "app-password",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "app-password", cfg.Email.Password)
			},
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
graph:
  base_url: http://localhost:8089/v12.0
  credentials_file: /etc/gpm/token
  timeout: 5s
  rate_limit:
    per_second: 1
    burst: 2
    hourly_limit: 50
monitor:
  groups: ["111", "222"]
  min_price: 500
  max_price: 1200
  keywords: [pet, parking]
  check_interval: 300
  run_immediately: true
  autostart: true
email:
  sender: me@example.com
  receiver: you@example.com
  smtp_server: smtp.example.com
  smtp_port: 2525
  password: secret
  dry_run: true
logging:
  level: debug
  format: json
  file: /var/log/gpm.log
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "http://localhost:8089/v12.0", cfg.Graph.BaseURL)
				assert.Equal(t, "/etc/gpm/token", cfg.Graph.CredentialsFile)
				assert.Equal(t, 5*time.Second, cfg.Graph.Timeout)
				assert.Equal(t, int64(50), cfg.Graph.RateLimit.HourlyLimit)
				assert.Equal(t, []string{"111", "222"}, cfg.Monitor.Groups)
				assert.Equal(t, []string{"pet", "parking"}, cfg.Monitor.Keywords)
				assert.True(t, cfg.Monitor.Autostart)
				assert.True(t, cfg.Email.DryRun)
				assert.Equal(t, 2525, cfg.Email.SMTPPort)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "/var/log/gpm.log", cfg.Logging.File)

				s := cfg.Settings()
				assert.Equal(t, 5*time.Minute, s.CheckInterval)
				assert.Equal(t, 500, s.Criteria.MinPrice)
				assert.Equal(t, 1200, s.Criteria.MaxPrice)
				assert.True(t, s.RunImmediately)
				assert.Equal(t, "secret", s.EmailPassword)
				require.NoError(t, s.Validate())
			},
		},
		{
			name: "autostart requires valid monitor settings",
			yaml: `
monitor:
  autostart: true
  min_price: 900
  max_price: 100
`,
			wantErr: "monitor (autostart)",
		},
		{
			name: "monitor settings not required without autostart",
			yaml: `
monitor:
  min_price: 900
  max_price: 100
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.False(t, cfg.Monitor.Autostart)
			},
		},
		{
			name: "invalid base url",
			yaml: `
graph:
  base_url: graph.facebook.com
`,
			wantErr: `graph.base_url must be an http(s) URL (got "graph.facebook.com")`,
		},
		{
			name: "invalid logging format",
			yaml: `
logging:
  format: xml
`,
			wantErr: `logging.format must be one of: text, json (got "xml")`,
		},
		{
			name: "negative check interval",
			yaml: `
monitor:
  check_interval: -5
`,
			wantErr: "monitor.check_interval must be positive (got -5)",
		},
		{
			name: "invalid server port",
			yaml: `
server:
  port: 70000
`,
			wantErr: "server.port must be between 1 and 65535 (got 70000)",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoadAccessToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		contents  *string
		want      string
		wantErr   bool
		errSubstr string
	}{
		{name: "trimmed token", contents: ptr("  EAAB-token\n"), want: "EAAB-token"},
		{name: "empty file", contents: ptr(" \n\t"), wantErr: true, errSubstr: "is empty"},
		{name: "missing file", contents: nil, wantErr: true, errSubstr: "reading"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "creds.txt")
			if tt.contents != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.contents), 0o600))
			}

			got, err := LoadAccessToken(path)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrCredentialUnavailable)
				assert.Contains(t, err.Error(), tt.errSubstr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ptr(s string) *string { return &s }
