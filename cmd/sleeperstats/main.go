// Command sleeperstats generates power-ranking, F-DVOA and roster snapshots
// for a Sleeper fantasy football league.
//
// Usage:
//
//	sleeperstats            generate every season's snapshot once
//	sleeperstats schedule   regenerate on SCHEDULE_CRON and serve the snapshots
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/omarshaarawi/sleeperstats/internal/api/fantasy"
	"github.com/omarshaarawi/sleeperstats/internal/api/sleeper"
	"github.com/omarshaarawi/sleeperstats/internal/bot"
	"github.com/omarshaarawi/sleeperstats/internal/config"
	"github.com/omarshaarawi/sleeperstats/internal/repository/memory"
	"github.com/omarshaarawi/sleeperstats/internal/scheduler"
	"github.com/omarshaarawi/sleeperstats/internal/server"
	"github.com/omarshaarawi/sleeperstats/internal/service"
	"github.com/omarshaarawi/sleeperstats/internal/snapshot"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sleeperstats",
		Short:         "Generate Sleeper league analytics snapshots",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context())
		},
	}
	root.AddCommand(scheduleCmd())
	return root
}

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Regenerate snapshots on a schedule and serve them over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScheduled(cmd.Context())
		},
	}
}

type app struct {
	cfg     *config.Config
	store   *snapshot.Store
	service *service.FantasyService
}

func setup() (*app, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	sleeperClient := sleeper.NewClient(cfg.Sleeper)
	sleeperAPI := sleeper.NewAPI(sleeperClient)

	repo := memory.NewRepository()
	fantasyAPI := fantasy.NewAPI(sleeperAPI, repo)

	store := snapshot.NewStore(cfg.Output.Dir)
	fantasyService := service.NewFantasyService(fantasyAPI, cfg, store)

	return &app{cfg: cfg, store: store, service: fantasyService}, nil
}

func runOnce(ctx context.Context) error {
	a, err := setup()
	if err != nil {
		return err
	}

	summary, err := a.service.Run(ctx)
	if err != nil {
		return err
	}
	slog.Info("Done", "run_id", summary.RunID, "written", summary.Written, "output_dir", a.cfg.Output.Dir)
	return nil
}

func runScheduled(parent context.Context) error {
	a, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var notify func(string) error
	if a.cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(a.cfg.TelegramBot.Token, a.cfg.TelegramBot.ChatID, a.store)
		if err != nil {
			return err
		}
		notify = telegramBot.SendMessage

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	}

	sched, err := scheduler.NewScheduler(a.cfg.Schedule, a.service, notify)
	if err != nil {
		return err
	}
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	srv := server.New(a.cfg.Server, a.store)
	go func() {
		slog.Info("Serving snapshots", "addr", srv.Addr, "output_dir", a.cfg.Output.Dir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
