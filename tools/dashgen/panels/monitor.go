package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LastCycle returns a stat panel showing time since the last completed cycle.
func LastCycle() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Last Cycle").
		Description("Time since the last completed poll cycle").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`time() - gpm_last_cycle_timestamp`+jobSelector(), "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(600, 3600)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// NextCycle returns a stat panel showing time until the next cycle is due.
func NextCycle() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Next Cycle").
		Description("Time until the next poll cycle is due").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`gpm_next_cycle_timestamp`+jobSelector()+` - time()`, "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// CyclesRate returns a stat panel showing completed cycles in the last hour.
func CyclesRate() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Cycles (1h)").
		Description("Poll cycles completed in the last hour").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`increase(gpm_cycles_total`+jobSelector()+`[1h])`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// CycleDuration returns a timeseries panel showing the p95 cycle duration.
func CycleDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cycle Duration (p95)").
		Description("95th percentile poll cycle duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(gpm_cycle_duration_seconds_bucket`+jobSelector()+`[5m])) by (le))`,
			"p95",
			"A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// PostsFetchedRate returns a timeseries panel showing posts fetched per
// minute for each group.
func PostsFetchedRate() *timeseries.PanelBuilder {
	return perGroupRate("Posts Fetched / min", "Posts returned by the group feeds per minute",
		`gpm:posts_fetched:rate5m * 60`, "posts/min")
}

// PostsMatchedRate returns a timeseries panel showing posts that passed the
// filter per minute for each group.
func PostsMatchedRate() *timeseries.PanelBuilder {
	return perGroupRate("Posts Matched / min", "New posts that passed the price and keyword filter per minute",
		`gpm:posts_matched:rate5m * 60`, "matches/min")
}

// FetchFailures returns a timeseries panel showing feed fetch failures per
// minute for each group.
func FetchFailures() *timeseries.PanelBuilder {
	return perGroupRate("Fetch Failures / min", "Failed group feed fetches per minute",
		`gpm:fetch_failures:rate5m * 60`, "failures/min").
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemeThresholds())
}

func perGroupRate(title, description, expr, unit string) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(expr, "{{group}}", "A")).
		Unit(unit).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
