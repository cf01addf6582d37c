package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/omarshaarawi/sleeperstats/internal/config"
	"github.com/omarshaarawi/sleeperstats/internal/service"
)

// Runner regenerates every snapshot. *service.FantasyService satisfies it.
type Runner interface {
	Run(ctx context.Context) (*service.RunSummary, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	cron        string
	runner      Runner
	sendMessage func(string) error
}

// NewScheduler builds a scheduler in the configured timezone. sendMessage may
// be nil, in which case runs are not announced.
func NewScheduler(cfg config.Schedule, runner Runner, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", cfg.Timezone, err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		cron:        cfg.Cron,
		runner:      runner,
		sendMessage: sendMessage,
	}, nil
}

// Start runs the pipeline immediately and then on every cron tick. A tick
// that fires while a run is still going is skipped.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.s.NewJob(
		gocron.CronJob(s.cron, false),
		gocron.NewTask(s.runPipeline, ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) runPipeline(ctx context.Context) {
	summary, err := s.runner.Run(ctx)
	if err != nil {
		slog.Error("Failed to generate snapshots", "error", err)
		return
	}
	if s.sendMessage == nil || summary.Latest == "" {
		return
	}

	report, ok := summary.Reports[summary.Latest]
	if !ok {
		return
	}
	if err := s.sendMessage(service.FormatPowerRankings(summary.Latest, report.ProjectionWeek, report.PowerRankings)); err != nil {
		slog.Error("Failed to send power rankings", "error", err)
	}
}
