// Package main implements a mock Graph API server for local development.
// It serves a canned group feed from a JSON fixture so the monitor can run
// end to end without a real access token.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

const graphTimeLayout = "2006-01-02T15:04:05-0700"

type feedResponse struct {
	Data []feedItem `json:"data"`
}

type feedItem struct {
	ID          string  `json:"id"`
	Message     *string `json:"message,omitempty"`
	CreatedTime string  `json:"created_time"`
}

type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/feed_response.json", "path to feed response fixture")
	token := flag.String("token", "mock-token", "access token the server accepts")
	fresh := flag.Bool("fresh", false, "restamp created_time so the newest post is always one minute old")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "items", len(fixture.Data))

	now := time.Now
	if !*fresh {
		now = nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v12.0/{group}/feed", feedHandler(logger, fixture, *token, now))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Graph API server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*feedResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp feedResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// feedHandler serves the fixture for any group. A missing or wrong
// access_token gets the 400 OAuthException Graph returns. When now is
// non-nil, items are restamped one minute apart ending a minute before now.
func feedHandler(logger *slog.Logger, fixture *feedResponse, token string, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group := r.PathValue("group")

		if got := r.URL.Query().Get("access_token"); got == "" || got != token {
			logger.Warn("rejected feed request", "group", group, "token_present", got != "")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]graphError{
				"error": {
					Message: "Invalid OAuth access token - Cannot parse access token",
					Type:    "OAuthException",
					Code:    190,
				},
			})
			return
		}

		resp := feedResponse{Data: make([]feedItem, len(fixture.Data))}
		copy(resp.Data, fixture.Data)
		if now != nil {
			base := now().UTC().Truncate(time.Second)
			for i := range resp.Data {
				resp.Data[i].CreatedTime = base.Add(-time.Duration(i+1) * time.Minute).Format(graphTimeLayout)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(resp)
		logger.Info("feed", "group", group, "returned", len(resp.Data))
	}
}
