package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	apiclient "github.com/donaldgifford/group-post-monitor/internal/api/client"
	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printStatus(w io.Writer, st *domain.Status) error {
	tw := newTabWriter(w)
	state := "stopped"
	if st.Running {
		state = "running"
	}
	tw.writef("State:\t%s\n", state)
	if len(st.Groups) > 0 {
		tw.writef("Groups:\t%s\n", strings.Join(st.Groups, ", "))
	}
	tw.writef("Started:\t%s\n", formatTime(st.StartedAt))
	tw.writef("Last Cycle:\t%s\n", formatTime(st.LastCycleAt))
	tw.writef("Next Cycle:\t%s\n", formatTime(st.NextCycleAt))
	tw.writef("Cycles:\t%d\n", st.CyclesCompleted)
	tw.writef("Notifications:\t%d\n", st.NotificationsSent)
	return tw.finish()
}

func printQuota(w io.Writer, q *apiclient.Quota) error {
	tw := newTabWriter(w)
	if q.HourlyLimit == 0 {
		tw.writef("Hourly Limit:\tunlimited\n")
		tw.writef("Used:\t%d\n", q.HourlyUsed)
	} else {
		tw.writef("Hourly Limit:\t%d\n", q.HourlyLimit)
		tw.writef("Used:\t%d\n", q.HourlyUsed)
		tw.writef("Remaining:\t%d\n", q.Remaining)
	}
	tw.writef("Resets:\t%s\n", formatTime(q.ResetAt))
	return tw.finish()
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
