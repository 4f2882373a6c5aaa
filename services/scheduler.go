// services/scheduler.go
package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// NewScheduler returns a started gocron scheduler for the background jobs.
func NewScheduler() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	sched.Start()
	return sched, nil
}

// ScheduleOverrideRefresh reloads admin overrides every interval so edits made by
// other instances show up without a restart.
func (c *GameCatalog) ScheduleOverrideRefresh(sched gocron.Scheduler, every time.Duration) error {
	_, err := sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := c.RefreshOverrides(ctx); err != nil {
				c.logger.Warn("[Scheduler] Override refresh failed", zap.Error(err))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}
