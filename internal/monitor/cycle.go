package monitor

import (
	"context"
	"time"

	"github.com/donaldgifford/group-post-monitor/internal/metrics"
	"github.com/donaldgifford/group-post-monitor/internal/notify"
)

// CycleResult summarizes one pass over every group.
type CycleResult struct {
	Fetched       int
	Matched       int
	Sent          int
	FetchFailures int
	SendFailures  int
}

// runCycle processes groups in order: fetch, filter, then notify each
// matched post. A failing group is skipped; a failing send is skipped.
func (m *Monitor) runCycle(ctx context.Context) CycleResult {
	start := time.Now()
	defer func() {
		metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}()

	m.log.Info("cycle starting", "groups", len(m.settings.Groups))

	var res CycleResult
	for _, groupID := range m.settings.Groups {
		if ctx.Err() != nil {
			break
		}
		m.processGroup(ctx, groupID, &res)
	}

	m.log.Info("cycle complete",
		"fetched", res.Fetched,
		"matched", res.Matched,
		"sent", res.Sent,
		"fetch_failures", res.FetchFailures,
		"send_failures", res.SendFailures,
		"canceled", ctx.Err() != nil,
		"duration", time.Since(start),
	)
	return res
}

func (m *Monitor) processGroup(ctx context.Context, groupID string, res *CycleResult) {
	posts, err := m.source.Feed(ctx, groupID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		res.FetchFailures++
		metrics.FetchFailuresTotal.WithLabelValues(groupID).Inc()
		m.log.Error("fetching group feed failed", "group", groupID, "error", err)
		return
	}
	res.Fetched += len(posts)
	metrics.PostsFetchedTotal.WithLabelValues(groupID).Add(float64(len(posts)))

	matched := m.filter.Apply(groupID, posts)
	res.Matched += len(matched)
	metrics.PostsMatchedTotal.WithLabelValues(groupID).Add(float64(len(matched)))

	if last, ok := m.filter.LastSeen(groupID); ok {
		m.log.Debug("group processed",
			"group", groupID,
			"fetched", len(posts),
			"matched", len(matched),
			"last_seen", last,
		)
	}

	for i := range matched {
		if ctx.Err() != nil {
			return
		}

		p := &matched[i]
		if err := m.notifier.Send(ctx, notify.PostMessage(p)); err != nil {
			res.SendFailures++
			m.log.Error("sending notification failed",
				"group", groupID,
				"post_id", p.ID,
				"error", err,
			)
			continue
		}
		res.Sent++
		m.log.Info("notification sent", "group", groupID, "post_id", p.ID)
	}
}
