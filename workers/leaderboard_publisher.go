// workers/leaderboard_publisher.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"sourcing-trainer/models"
	"sourcing-trainer/services"
)

// Uploader stores a published object and returns where it can be fetched.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// LeaderboardPublisher writes a JSON snapshot of every leaderboard window to object
// storage so clients can read rankings from the CDN without hitting the API.
type LeaderboardPublisher struct {
	leaderboards *services.LeaderboardService
	uploader     Uploader
	logger       *zap.Logger
	windows      []models.LeaderboardWindow
	limit        int
}

func NewLeaderboardPublisher(lb *services.LeaderboardService, uploader Uploader, logger *zap.Logger) *LeaderboardPublisher {
	return &LeaderboardPublisher{
		leaderboards: lb,
		uploader:     uploader,
		logger:       logger,
		windows:      models.Windows,
		limit:        100,
	}
}

// SnapshotKey is the object key for window.
func SnapshotKey(window models.LeaderboardWindow) string {
	return fmt.Sprintf("leaderboards/%s.json", slug.Make(string(window)))
}

// PublishAll uploads every window. A failing window does not stop the others.
func (p *LeaderboardPublisher) PublishAll(ctx context.Context) error {
	var errs []error
	for _, w := range p.windows {
		if err := p.publish(ctx, w); err != nil {
			p.logger.Warn("Leaderboard publish failed", zap.String("window", string(w)), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", w, err))
		}
	}
	return errors.Join(errs...)
}

func (p *LeaderboardPublisher) publish(ctx context.Context, window models.LeaderboardWindow) error {
	snap, err := p.leaderboards.Snapshot(ctx, window)
	if err != nil {
		return err
	}
	if p.limit > 0 && len(snap.Entries) > p.limit {
		snap.Entries = snap.Entries[:p.limit]
	}
	body, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	url, err := p.uploader.Upload(ctx, SnapshotKey(window), body, "application/json")
	if err != nil {
		return err
	}
	p.logger.Debug("Leaderboard published",
		zap.String("window", string(window)),
		zap.Int("entries", len(snap.Entries)),
		zap.String("url", url))
	return nil
}

// Schedule runs PublishAll every interval on sched.
func (p *LeaderboardPublisher) Schedule(sched gocron.Scheduler, every time.Duration) error {
	_, err := sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), every)
			defer cancel()
			_ = p.PublishAll(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	return err
}
