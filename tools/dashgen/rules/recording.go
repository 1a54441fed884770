package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "gpm-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "gpm-recording",
					Rules: []Rule{
						{
							Record: "gpm:http_requests:rate5m",
							Expr:   `sum(rate(gpm_http_requests_total[5m]))`,
						},
						{
							Record: "gpm:http_errors:rate5m",
							Expr:   `sum(rate(gpm_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "gpm:posts_fetched:rate5m",
							Expr:   `sum by (group) (rate(gpm_posts_fetched_total[5m]))`,
						},
						{
							Record: "gpm:posts_matched:rate5m",
							Expr:   `sum by (group) (rate(gpm_posts_matched_total[5m]))`,
						},
						{
							Record: "gpm:fetch_failures:rate5m",
							Expr:   `sum by (group) (rate(gpm_fetch_failures_total[5m]))`,
						},
						{
							Record: "gpm:graph_api_calls:rate5m",
							Expr:   `rate(gpm_graph_api_calls_total[5m])`,
						},
						{
							Record: "gpm:notifications_sent:rate5m",
							Expr:   `rate(gpm_notifications_sent_total[5m])`,
						},
						{
							Record: "gpm:notification_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(gpm_notification_duration_seconds_bucket[5m])) by (le))`,
						},
					},
				},
			},
		},
	}
}
