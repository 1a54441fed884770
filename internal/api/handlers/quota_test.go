package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/group-post-monitor/internal/api/handlers"
	"github.com/donaldgifford/group-post-monitor/internal/graph"
)

func TestGetQuota(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rl         *graph.RateLimiter
		preCalls   int
		wantLimit  int64
		wantUsed   int64
		wantRemain int64
		wantReset  bool
	}{
		{
			name: "nil rate limiter returns zeroes",
		},
		{
			name:       "fresh rate limiter",
			rl:         graph.NewRateLimiter(100, 10, 200),
			wantLimit:  200,
			wantRemain: 200,
			wantReset:  true,
		},
		{
			name:       "unlimited budget",
			rl:         graph.NewRateLimiter(100, 10, 0),
			preCalls:   2,
			wantUsed:   2,
			wantRemain: -1,
			wantReset:  true,
		},
		{
			name:       "rate limiter with usage",
			rl:         graph.NewRateLimiter(100, 10, 100),
			preCalls:   3,
			wantLimit:  100,
			wantUsed:   3,
			wantRemain: 97,
			wantReset:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.rl != nil {
				for range tt.preCalls {
					require.NoError(t, tt.rl.Wait(t.Context()))
				}
			}

			_, api := humatest.New(t)
			handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(tt.rl))

			resp := api.Get("/api/v1/quota")
			require.Equal(t, http.StatusOK, resp.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

			assert.InDelta(t, float64(tt.wantLimit), body["hourly_limit"], 0.0001)
			assert.InDelta(t, float64(tt.wantUsed), body["hourly_used"], 0.0001)
			assert.InDelta(t, float64(tt.wantRemain), body["remaining"], 0.0001)
			_, hasReset := body["reset_at"]
			assert.Equal(t, tt.wantReset, hasReset)
		})
	}
}
