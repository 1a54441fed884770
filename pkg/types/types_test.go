package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() Settings {
	return Settings{
		Groups:        []string{"123456789"},
		Criteria:      Criteria{MinPrice: 500, MaxPrice: 1200, Keywords: []string{"pet"}},
		EmailSender:   "alerts@example.com",
		EmailReceiver: "me@example.com",
		SMTPServer:    "smtp.example.com",
		SMTPPort:      587,
		CheckInterval: time.Minute,
	}
}

func TestSettings_ApplyDefaults(t *testing.T) {
	t.Parallel()

	s := Settings{}
	s.ApplyDefaults()

	assert.Equal(t, "smtp.gmail.com", s.SMTPServer)
	assert.Equal(t, 587, s.SMTPPort)
	assert.Equal(t, 60*time.Second, s.CheckInterval)
}

func TestSettings_ApplyDefaults_KeepsExplicitValues(t *testing.T) {
	t.Parallel()

	s := Settings{SMTPServer: "mail.local", SMTPPort: 2525, CheckInterval: 5 * time.Second}
	s.ApplyDefaults()

	assert.Equal(t, "mail.local", s.SMTPServer)
	assert.Equal(t, 2525, s.SMTPPort)
	assert.Equal(t, 5*time.Second, s.CheckInterval)
}

func TestSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr string
	}{
		{
			name:   "valid settings",
			mutate: func(_ *Settings) {},
		},
		{
			name:    "no groups",
			mutate:  func(s *Settings) { s.Groups = nil },
			wantErr: "at least one group is required",
		},
		{
			name:    "blank group",
			mutate:  func(s *Settings) { s.Groups = []string{"1", "  "} },
			wantErr: "group ids must not be blank",
		},
		{
			name:    "min above max",
			mutate:  func(s *Settings) { s.Criteria.MinPrice = 2000 },
			wantErr: "min price 2000 must not exceed max price 1200",
		},
		{
			name:    "negative min",
			mutate:  func(s *Settings) { s.Criteria.MinPrice = -1 },
			wantErr: "min price must not be negative",
		},
		{
			name:   "min equals max",
			mutate: func(s *Settings) { s.Criteria.MinPrice = 1200 },
		},
		{
			name:    "missing sender",
			mutate:  func(s *Settings) { s.EmailSender = "" },
			wantErr: "email sender is required",
		},
		{
			name:    "missing receiver",
			mutate:  func(s *Settings) { s.EmailReceiver = "" },
			wantErr: "email receiver is required",
		},
		{
			name:    "port out of range",
			mutate:  func(s *Settings) { s.SMTPPort = 70000 },
			wantErr: "smtp port must be between 1 and 65535",
		},
		{
			name:    "zero interval",
			mutate:  func(s *Settings) { s.CheckInterval = 0 },
			wantErr: "check interval must be at least 1s",
		},
		{
			name: "cron schedule replaces interval",
			mutate: func(s *Settings) {
				s.CheckInterval = 0
				s.Schedule = "*/5 * * * *"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := validSettings()
			tt.mutate(&s)

			err := s.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettings_Validate_JoinsErrors(t *testing.T) {
	t.Parallel()

	s := Settings{}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one group is required")
	assert.Contains(t, err.Error(), "email sender is required")
	assert.Contains(t, err.Error(), "email receiver is required")
}

func TestPost_URL(t *testing.T) {
	t.Parallel()

	p := Post{ID: "123_456"}
	assert.Equal(t, "https://facebook.com/123_456", p.URL())
}
