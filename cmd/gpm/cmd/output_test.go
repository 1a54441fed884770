package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/donaldgifford/group-post-monitor/internal/api/client"
	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

func TestPrintStatus(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  domain.Status
		want    []string
		notWant []string
	}{
		{
			name:    "stopped with no history",
			status:  domain.Status{},
			want:    []string{"State:", "stopped", "Started:", "-", "Cycles:", "0"},
			notWant: []string{"Groups:"},
		},
		{
			name: "running",
			status: domain.Status{
				Running:           true,
				Groups:            []string{"111", "222"},
				StartedAt:         &started,
				CyclesCompleted:   7,
				NotificationsSent: 2,
			},
			want: []string{"running", "111, 222", started.Local().Format(timeLayout), "7", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, printStatus(&buf, &tt.status))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, buf.String(), w)
			}
		})
	}
}

func TestPrintQuota(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printQuota(&buf, &apiclient.Quota{HourlyLimit: 200, HourlyUsed: 5, Remaining: 195}))

	out := buf.String()
	assert.Contains(t, out, "Hourly Limit:")
	assert.Contains(t, out, "200")
	assert.Contains(t, out, "195")
	assert.Contains(t, out, "Resets:")
}

func TestPrintQuota_Unlimited(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printQuota(&buf, &apiclient.Quota{HourlyUsed: 7, Remaining: -1}))

	out := buf.String()
	assert.Contains(t, out, "unlimited")
	assert.Contains(t, out, "7")
	assert.NotContains(t, out, "Remaining:")
	assert.NotContains(t, out, "-1")
}

func TestOutputJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, outputJSON(&buf, &domain.Status{Running: true, CyclesCompleted: 1}))
	assert.JSONEq(t, `{"running":true,"cycles_completed":1,"notifications_sent":0}`, buf.String())
}
