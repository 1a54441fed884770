package main

import "errors"

// KnownMetrics is the set of metric names exported by group-post-monitor
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"gpm_http_request_duration_seconds": true,
	"gpm_http_requests_total":           true,

	// Health metrics.
	"gpm_healthz_up": true,
	"gpm_readyz_up":  true,

	// Monitor metrics.
	"gpm_monitor_running":        true,
	"gpm_cycles_total":           true,
	"gpm_cycle_duration_seconds": true,
	"gpm_last_cycle_timestamp":   true,
	"gpm_next_cycle_timestamp":   true,
	"gpm_posts_fetched_total":    true,
	"gpm_posts_matched_total":    true,
	"gpm_fetch_failures_total":   true,

	// Graph API metrics.
	"gpm_graph_api_calls_total":         true,
	"gpm_graph_api_errors_total":        true,
	"gpm_graph_hourly_usage":            true,
	"gpm_graph_hourly_limit_hits_total": true,

	// Notification metrics.
	"gpm_notifications_sent_total":      true,
	"gpm_notification_failures_total":   true,
	"gpm_notification_duration_seconds": true,

	// Recording rules.
	"gpm:http_requests:rate5m":         true,
	"gpm:http_errors:rate5m":           true,
	"gpm:posts_fetched:rate5m":         true,
	"gpm:posts_matched:rate5m":         true,
	"gpm:fetch_failures:rate5m":        true,
	"gpm:graph_api_calls:rate5m":       true,
	"gpm:notifications_sent:rate5m":    true,
	"gpm:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
