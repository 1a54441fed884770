package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/donaldgifford/group-post-monitor/internal/api/client"
	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// These tests drive the root command, which shares viper's global state,
// so they do not run in parallel.

func TestStartCommand(t *testing.T) {
	t.Setenv("GPM_EMAIL_PASSWORD", "from-env")
	t.Setenv("HOME", t.TempDir())

	var got apiclient.StartRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/monitor/start", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.Status{Running: true, Groups: got.Groups})
	}))
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"start",
		"--server", srv.URL,
		"--groups", "111, 222,,",
		"--min-price", "500",
		"--max-price", "1200",
		"--keywords", "pet,parking",
		"--sender", "me@example.com",
		"--receiver", "you@example.com",
		"--interval", "300",
	})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, []string{"111", "222"}, got.Groups)
	assert.Equal(t, 500, got.MinPrice)
	assert.Equal(t, 1200, got.MaxPrice)
	assert.Equal(t, []string{"pet", "parking"}, got.Keywords)
	assert.Equal(t, "from-env", got.EmailPassword)
	assert.Equal(t, 300, got.CheckInterval)
	assert.Contains(t, out.String(), "running")
	assert.Contains(t, out.String(), "111, 222")
}

func TestListValue_ConfigSequence(t *testing.T) {
	defer viper.Reset()

	viper.Set("groups", []any{"111", " 222 ", ""})
	assert.Equal(t, []string{"111", "222"}, listValue("groups"))

	viper.Set("groups", "333,444")
	assert.Equal(t, []string{"333", "444"}, listValue("groups"))
}
