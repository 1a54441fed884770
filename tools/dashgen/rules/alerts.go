package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// group-post-monitor operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "gpm-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "gpm-alerts",
					Rules: []Rule{
						{
							Alert: "GpmDown",
							Expr:  `absent(up{job="group-post-monitor"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Group Post Monitor is down",
								"description": "The group-post-monitor job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "GpmReadinessDown",
							Expr:  `gpm_readyz_up == 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Group Post Monitor cannot read its access token",
								"description": "The readiness probe has reported the credentials file as unavailable for more than 5 minutes.",
							},
						},
						{
							Alert: "GpmHighErrorRate",
							Expr:  `gpm:http_errors:rate5m / gpm:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Group Post Monitor",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "GpmCycleOverdue",
							Expr:  `gpm_monitor_running == 1 and (time() - gpm_next_cycle_timestamp) > 300`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Poll cycle is overdue",
								"description": "The monitor is running but its next cycle has been due for more than 5 minutes.",
							},
						},
						{
							Alert: "GpmFetchFailures",
							Expr:  `gpm:fetch_failures:rate5m > 0`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Group feed fetches are failing",
								"description": "Fetches for group {{ $labels.group }} have been failing for more than 15 minutes.",
							},
						},
						{
							Alert: "GpmGraphQuotaHigh",
							Expr:  `gpm_graph_hourly_usage > 160`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Graph API hourly usage is above 80% of the budget",
								"description": "Graph API usage in the rolling hour has exceeded 160 calls (default budget is 200).",
							},
						},
						{
							Alert: "GpmGraphLimitReached",
							Expr:  `increase(gpm_graph_hourly_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Graph API hourly budget has been exhausted",
								"description": "Feed fetches are failing until the rolling one-hour window resets.",
							},
						},
						{
							Alert: "GpmNotificationFailures",
							Expr:  `increase(gpm_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more notification emails failed to send over SMTP.",
							},
						},
					},
				},
			},
		},
	}
}
