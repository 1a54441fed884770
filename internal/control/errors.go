package control

import (
	"errors"

	"github.com/donaldgifford/group-post-monitor/internal/config"
	"github.com/donaldgifford/group-post-monitor/internal/graph"
	"github.com/donaldgifford/group-post-monitor/internal/monitor"
)

// Errors returned by Controller operations. Callers match them with
// errors.Is.
var (
	ErrCredentialUnavailable  = config.ErrCredentialUnavailable
	ErrAuthenticationRejected = errors.New("authentication rejected")
	ErrInvalidInput           = errors.New("invalid input")
	ErrAlreadyRunning         = monitor.ErrAlreadyRunning
	ErrNotRunning             = errors.New("monitor not running")
	ErrRateLimited            = graph.ErrHourlyLimitReached
)
