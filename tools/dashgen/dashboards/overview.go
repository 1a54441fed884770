// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/group-post-monitor/tools/dashgen/panels"
)

// BuildOverview constructs the GPM Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("GPM Overview").
		Uid("gpm-overview").
		Tags([]string{"gpm", "group-post-monitor"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.MonitorRunningStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Monitor.
	b.WithRow(dashboard.NewRowBuilder("Monitor").
		WithPanel(panels.LastCycle()).
		WithPanel(panels.NextCycle()).
		WithPanel(panels.CyclesRate()).
		WithPanel(panels.CycleDuration()))

	// Row 4: Posts.
	b.WithRow(dashboard.NewRowBuilder("Posts").
		WithPanel(panels.PostsFetchedRate()).
		WithPanel(panels.PostsMatchedRate()).
		WithPanel(panels.FetchFailures()))

	// Row 5: Graph API.
	b.WithRow(dashboard.NewRowBuilder("Graph API").
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.HourlyUsage()).
		WithPanel(panels.APIErrors()).
		WithPanel(panels.LimitHits()))

	// Row 6: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationsRate()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
