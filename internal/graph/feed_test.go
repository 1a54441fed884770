package graph_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/group-post-monitor/internal/graph"
)

func TestClient_Feed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    bool
		errContain string
		wantStatus int
		wantIDs    []string
	}{
		{
			name: "posts returned in feed order",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/123/feed", r.URL.Path)
				assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"data": [
						{"id": "123_2", "message": "$900 pet ok", "created_time": "2024-03-01T12:05:00+0000"},
						{"id": "123_1", "message": "$800 studio", "created_time": "2024-03-01T12:00:00+0000"}
					],
					"paging": {"next": "ignored"}
				}`))
			},
			wantIDs: []string{"123_2", "123_1"},
		},
		{
			name: "empty data array",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"data": []}`))
			},
			wantIDs: []string{},
		},
		{
			name: "items with bad created_time dropped",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"data": [
					{"id": "a", "message": "x", "created_time": "yesterday"},
					{"id": "b", "message": "y", "created_time": "2024-03-01T12:00:00+0000"}
				]}`))
			},
			wantIDs: []string{"b"},
		},
		{
			name: "400 oauth error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error": {"type": "OAuthException"}}`))
			},
			wantErr:    true,
			errContain: "status 400",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "500 server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    true,
			errContain: "status 500",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "invalid JSON response",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>maintenance</html>"))
			},
			wantErr:    true,
			errContain: "parsing feed response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := graph.NewClient("test-token", graph.WithBaseURL(srv.URL))
			posts, err := client.Feed(context.Background(), "123")

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				if tt.wantStatus != 0 {
					var apiErr *graph.APIError
					require.ErrorAs(t, err, &apiErr)
					assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
				}
				return
			}

			require.NoError(t, err)
			got := make([]string, 0, len(posts))
			for i := range posts {
				assert.Equal(t, "123", posts[i].GroupID)
				got = append(got, posts[i].ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestClient_Feed_MessageAbsent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": [
			{"id": "photo", "created_time": "2024-03-01T12:00:00+0000"},
			{"id": "text", "message": "hello", "created_time": "2024-03-01T12:01:00+0000"}
		]}`))
	}))
	defer srv.Close()

	posts, err := graph.NewClient("tok", graph.WithBaseURL(srv.URL)).Feed(context.Background(), "g")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.False(t, posts[0].HasMessage)
	assert.True(t, posts[1].HasMessage)
	assert.Equal(t, "hello", posts[1].Message)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 1, 0, 0, time.UTC), posts[1].CreatedTime.UTC())
}

func TestClient_Feed_TransportErrorHidesToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := graph.NewClient("super-secret", graph.WithBaseURL(url)).Feed(context.Background(), "g")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing feed request")
	assert.NotContains(t, err.Error(), "super-secret")
}

func TestClient_CheckAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "2xx with any body passes", status: http.StatusOK, body: "not json"},
		{name: "expired token rejected", status: http.StatusBadRequest, body: `{"error":{}}`, wantErr: true},
		{name: "forbidden group rejected", status: http.StatusForbidden, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := graph.NewClient("tok", graph.WithBaseURL(srv.URL)).CheckAccess(context.Background(), "g")
			if tt.wantErr {
				var apiErr *graph.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.status, apiErr.StatusCode)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestClient_Feed_RateLimited(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	// Rate limiter with an hourly budget of 1.
	rl := graph.NewRateLimiter(100, 10, 1)
	client := graph.NewClient("tok", graph.WithBaseURL(srv.URL), graph.WithRateLimiter(rl))
	assert.Same(t, rl, client.RateLimiter())

	_, err := client.Feed(context.Background(), "g")
	require.NoError(t, err)

	_, err = client.Feed(context.Background(), "g")
	require.ErrorIs(t, err, graph.ErrHourlyLimitReached)
	assert.Contains(t, err.Error(), "rate limit:")
}

func TestClient_Feed_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := graph.NewClient("tok", graph.WithBaseURL(srv.URL)).Feed(ctx, "g")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "graph API error (status 502)", (&graph.APIError{StatusCode: 502}).Error())
	assert.Equal(t, "graph API error (status 400): bad", (&graph.APIError{StatusCode: 400, Body: " bad\n"}).Error())
}
