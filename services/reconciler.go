package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sourcing-trainer/models"
	"sourcing-trainer/store"
)

// Reconciler merges a graded attempt into the durable player record.
//
// Writes are last-write-wins keyed by player id. Two submissions racing for the same
// player are rebased when the second one notices the log moved, but there is no
// compare-and-swap on the row itself.
type Reconciler struct {
	Store  store.PlayerStore
	Engine *AchievementEngine
	Roster *Roster
	Logger *zap.Logger
	Now    func() time.Time
}

// ReconcileRequest carries the record the orchestrator read and what it wants saved.
type ReconcileRequest struct {
	SessionToken string
	PlayerID     string
	Attempt      models.Attempt
	Base         *models.Player
	Proposed     *models.Player
}

// ReconcileResult is the persisted player plus what the attempt unlocked.
type ReconcileResult struct {
	Player          *models.Player
	NewAchievements []models.Achievement
	Rebased         bool
}

func (r *Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

// Reconcile merges one graded attempt into the durable record and settles the Roster.
func (r *Reconciler) Reconcile(ctx context.Context, req ReconcileRequest) (*ReconcileResult, error) {
	current, err := r.load(ctx, req.SessionToken, req.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("%w: reload player: %v", ErrPersistence, err)
	}

	next := req.Proposed.Clone()
	rebased := false
	if req.Base == nil || !sameAttemptLog(current, req.Base) {
		next = rebase(current, req.Attempt)
		rebased = true
		r.Logger.Info("Rebased attempt onto newer player record",
			zap.String("player_id", current.ID),
			zap.Int("durable_attempts", len(current.Attempts)))
	}
	// Unlocked achievements always come from the durable row.
	next.Achievements = current.Clone().Achievements

	if sum := next.AttemptScoreSum(); sum != next.Score {
		r.Logger.Warn("Player score drifted from attempt log, repairing",
			zap.String("player_id", next.ID),
			zap.Int("score", next.Score),
			zap.Int("attempt_sum", sum))
		next.Score = sum
	}

	sub := r.Roster.Begin(current)

	unlocked := Unlock(r.checkAchievements(next), r.now())
	fresh := make([]models.Achievement, 0, len(unlocked))
	for _, a := range unlocked {
		if next.HasAchievement(a.ID) {
			continue
		}
		next.Achievements = append(next.Achievements, a)
		fresh = append(fresh, a)
	}

	if err := sub.Apply(next); err != nil {
		return nil, err
	}
	if err := r.Store.SaveProgress(ctx, next); err != nil {
		if rbErr := sub.Rollback(); rbErr != nil {
			r.Logger.Error("Rollback failed", zap.String("player_id", next.ID), zap.Error(rbErr))
		}
		r.Logger.Error("Failed to persist player progress",
			zap.String("player_id", next.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := sub.Commit(next); err != nil {
		return nil, err
	}

	return &ReconcileResult{Player: next, NewAchievements: fresh, Rebased: rebased}, nil
}

// load prefers the session token and falls back to the player id.
func (r *Reconciler) load(ctx context.Context, token, id string) (*models.Player, error) {
	if token != "" {
		p, err := r.Store.GetBySessionToken(ctx, token)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, store.ErrNotFound) || id == "" {
			return nil, err
		}
	}
	return r.Store.GetByID(ctx, id)
}

// checkAchievements never fails the submission; rule errors and panics are logged.
func (r *Reconciler) checkAchievements(p *models.Player) (defs []models.AchievementDefinition) {
	if r.Engine == nil {
		return nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.Logger.Error("Achievement check panicked", zap.Any("panic", rec))
			defs = nil
		}
	}()
	defs, err := r.Engine.CheckNewAchievements(p)
	if err != nil {
		r.Logger.Warn("Achievement rules failed", zap.String("player_id", p.ID), zap.Error(err))
	}
	return defs
}

func sameAttemptLog(a, b *models.Player) bool {
	if len(a.Attempts) != len(b.Attempts) {
		return false
	}
	la, ok := a.LastAttempt()
	if !ok {
		return true
	}
	lb, _ := b.LastAttempt()
	return la.GameID == lb.GameID && la.Score == lb.Score && la.Timestamp.Equal(lb.Timestamp)
}

func rebase(current *models.Player, attempt models.Attempt) *models.Player {
	next := current.Clone()
	if last, ok := next.LastAttempt(); ok && attempt.Timestamp.Before(last.Timestamp) {
		attempt.Timestamp = last.Timestamp
	}
	next.Attempts = append(next.Attempts, attempt)
	next.Score = current.Score + attempt.Score
	return next
}
