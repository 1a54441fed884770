package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/donaldgifford/group-post-monitor/internal/config"
	"github.com/donaldgifford/group-post-monitor/internal/control"
	"github.com/donaldgifford/group-post-monitor/internal/graph"
	"github.com/donaldgifford/group-post-monitor/internal/notify"
	"github.com/donaldgifford/group-post-monitor/pkg/logger"
	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// app holds the components shared by every command that talks to Graph.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	closer  io.Closer
	limiter *graph.RateLimiter
	ctl     *control.Controller
}

// newApp loads the config and wires the logger, rate limiter, and
// controller. Callers must Close the returned app.
func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, closer, err := logger.NewWithFile(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	slog.SetDefault(log)

	rl := cfg.Graph.RateLimit
	limiter := graph.NewRateLimiter(rl.PerSecond, rl.Burst, rl.HourlyLimit)
	httpClient := &http.Client{Timeout: cfg.Graph.Timeout}

	newSource := func(token string) control.Source {
		return graph.NewClient(token,
			graph.WithBaseURL(cfg.Graph.BaseURL),
			graph.WithHTTPClient(httpClient),
			graph.WithRateLimiter(limiter),
			graph.WithLogger(log),
		)
	}

	newNotifier := func(s *domain.Settings) notify.Notifier {
		if cfg.Email.DryRun {
			return notify.NewNoOpNotifier(log)
		}
		return notify.NewEmailNotifier(notify.EmailConfigFromSettings(s, cfg.Email.Timeout))
	}

	ctl := control.New(cfg.Graph.CredentialsFile, newSource, newNotifier, control.WithLogger(log))

	return &app{
		cfg:     cfg,
		log:     log,
		closer:  closer,
		limiter: limiter,
		ctl:     ctl,
	}, nil
}

func (a *app) Close() error {
	return a.closer.Close()
}
