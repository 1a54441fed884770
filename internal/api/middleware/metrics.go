// Package middleware provides Echo middleware for the group-post-monitor API.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/group-post-monitor/internal/metrics"
)

// unmatchedPath labels requests that matched no route, keeping label
// cardinality bounded.
const unmatchedPath = "unmatched"

// healthGauges maps probe paths to the gauge set from their last response.
var healthGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// skipped reports whether path is excluded from request metrics: probes,
// scrapes, and the API docs.
func skipped(path string) bool {
	switch path {
	case "/metrics", "/healthz", "/readyz", "/openapi.json", "/openapi.yaml":
		return true
	}
	return strings.HasPrefix(path, "/swagger")
}

// Metrics returns Echo middleware that records request duration and status
// by route template. Probe paths only update their up/down gauges.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" || path == "/*" {
				path = unmatchedPath
			}
			status := responseStatus(c, err)

			if gauge, ok := healthGauges[path]; ok {
				gauge.Set(boolToFloat(status >= 200 && status < 300))
			}
			if skipped(path) {
				return err
			}

			code := strconv.Itoa(status)
			method := c.Request().Method
			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, code).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, code).
				Inc()

			return err
		}
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// responseStatus returns the status the client will see. Errors returned
// by handlers are rendered after middleware runs, so their code is taken
// from the error itself.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
