package monitor

import (
	"fmt"

	"github.com/robfig/cron/v3"

	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// ParseSchedule returns the cycle schedule for s. A non-empty cron
// expression takes precedence over the check interval. Interval schedules
// are aligned to whole seconds.
func ParseSchedule(s *domain.Settings) (cron.Schedule, error) {
	if s.Schedule != "" {
		sched, err := cron.ParseStandard(s.Schedule)
		if err != nil {
			return nil, fmt.Errorf("parsing schedule %q: %w", s.Schedule, err)
		}
		return sched, nil
	}
	if s.CheckInterval <= 0 {
		return nil, fmt.Errorf("check interval must be positive (got %s)", s.CheckInterval)
	}
	return cron.Every(s.CheckInterval), nil
}
