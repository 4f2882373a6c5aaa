package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sourcing-trainer/handlers"
	"sourcing-trainer/services"
	"sourcing-trainer/utils"
	"sourcing-trainer/workers"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := newApplication(ctx, cfg, logger)
			if err != nil {
				logger.Error("Startup failed", zap.Error(err))
				return err
			}
			defer app.Close()

			sched, err := services.NewScheduler()
			if err != nil {
				return err
			}
			defer func() { _ = sched.Shutdown() }()

			if err := app.catalog.ScheduleOverrideRefresh(sched, cfg.OverrideRefreshInterval); err != nil {
				return err
			}

			r2 := utils.R2Config{
				AccountID:       cfg.R2.AccountID,
				AccessKeyID:     cfg.R2.AccessKeyID,
				AccessKeySecret: cfg.R2.AccessKeySecret,
				Bucket:          cfg.R2.Bucket,
				CDNBaseURL:      cfg.R2.CDNBaseURL,
			}
			if r2.Enabled() {
				uploader, err := utils.NewR2Uploader(ctx, r2)
				if err != nil {
					return err
				}
				publisher := workers.NewLeaderboardPublisher(app.leaderboards, uploader, logger)
				if err := publisher.Schedule(sched, cfg.LeaderboardPublishInterval); err != nil {
					return err
				}
				logger.Info("Leaderboard publishing enabled", zap.Duration("interval", cfg.LeaderboardPublishInterval))
			} else {
				logger.Info("R2 not configured, leaderboard publishing disabled")
			}

			server := handlers.NewApp(handlers.Deps{
				Catalog:        app.catalog,
				Achievements:   app.achievements,
				Players:        app.accounts,
				Evaluation:     app.evaluation,
				Leaderboards:   app.leaderboards,
				AdminToken:     cfg.AdminToken,
				AllowedOrigins: cfg.AllowedOrigins,
				Logger:         logger,
			})

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Listen(":" + cfg.Port)
			}()
			logger.Info("Server running", zap.String("port", cfg.Port), zap.Strings("origins", cfg.AllowedOrigins))

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.ShutdownWithContext(shutdownCtx)
		},
	}
}
