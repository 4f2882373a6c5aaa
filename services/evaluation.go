package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"sourcing-trainer/models"
	"sourcing-trainer/scoring"
	"sourcing-trainer/store"
)

const (
	DefaultMaxPromptChars     = 2800
	DefaultMaxSubmissionChars = 5000
)

// EvaluationConfig bounds the grading pipeline. Zero values fall back to defaults;
// a zero GradingTimeout means the request context alone bounds the grader.
type EvaluationConfig struct {
	MaxPromptChars     int
	MaxSubmissionChars int
	GradingTimeout     time.Duration
}

// EvaluationService runs one submission through grade → extract → reconcile.
type EvaluationService struct {
	Players    store.PlayerStore
	Catalog    *GameCatalog
	Grader     Grader
	Reconciler *Reconciler
	Config     EvaluationConfig
	Logger     *zap.Logger
	Now        func() time.Time
}

// EvaluationResult is what the player sees after a successful submission.
type EvaluationResult struct {
	Attempt         models.Attempt       `json:"attempt"`
	Player          *models.Player       `json:"player"`
	Score           int                  `json:"score"`
	Feedback        string               `json:"feedback"`
	Validation      scoring.Result       `json:"validation"`
	NewAchievements []models.Achievement `json:"new_achievements"`
	Truncated       bool                 `json:"prompt_truncated"`
}

func (s *EvaluationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Evaluate grades submission for the session's player and persists the attempt.
// Nothing is written unless grading produced a score.
func (s *EvaluationService) Evaluate(ctx context.Context, sessionToken, gameID, submission string) (*EvaluationResult, error) {
	if strings.TrimSpace(sessionToken) == "" {
		return nil, fmt.Errorf("%w: missing session token", ErrAuth)
	}
	game, err := s.Catalog.Get(gameID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(submission) == "" {
		return nil, fmt.Errorf("%w: submission is empty", ErrValidation)
	}
	if limit := s.maxSubmissionChars(); utf8.RuneCountInString(submission) > limit {
		return nil, fmt.Errorf("%w: submission exceeds %d characters", ErrValidation, limit)
	}

	player, err := authenticate(ctx, s.Players, sessionToken)
	if err != nil {
		return nil, err
	}

	validation := scoring.Validate(game.Validation, submission, game.ReferenceSolution)
	prompt, err := game.Prompt(submission)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGrading, err)
	}
	prompt, truncated := TruncatePrompt(prompt+"\n\n"+validation.Summary(), s.maxPromptChars())
	if truncated {
		s.Logger.Debug("Grading prompt truncated",
			zap.String("game_id", game.ID), zap.Int("max_chars", s.maxPromptChars()))
	}

	raw, err := s.grade(ctx, prompt)
	if err != nil {
		s.Logger.Warn("Grader call failed", zap.String("game_id", game.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrGrading, err)
	}
	score, clamped, ok := scoring.ExtractScoreRaw(raw)
	if !ok {
		s.Logger.Warn("Grader response carried no score", zap.String("game_id", game.ID))
		return nil, fmt.Errorf("%w: no score in grader response", ErrGrading)
	}
	if clamped {
		s.Logger.Warn("Grader score out of range, clamped",
			zap.String("game_id", game.ID), zap.Int("score", score))
	}

	feedback := strings.TrimSpace(raw)
	if score >= models.HighScoreThreshold {
		feedback += "\n\n" + celebrate(score)
	}

	ts := s.now()
	if last, ok := player.LastAttempt(); ok && ts.Before(last.Timestamp) {
		ts = last.Timestamp
	}
	attempt := models.Attempt{
		GameID:     game.ID,
		GameTitle:  game.Title,
		Submission: submission,
		Score:      score,
		Skill:      game.SkillCategory,
		Timestamp:  ts,
		Feedback:   feedback,
	}
	proposed := player.Clone()
	proposed.Attempts = append(proposed.Attempts, attempt)
	proposed.Score = player.Score + score

	res, err := s.Reconciler.Reconcile(ctx, ReconcileRequest{
		SessionToken: sessionToken,
		PlayerID:     player.ID,
		Attempt:      attempt,
		Base:         player,
		Proposed:     proposed,
	})
	if err != nil {
		return nil, err
	}
	if last, ok := res.Player.LastAttempt(); ok {
		attempt = last
	}

	s.Logger.Info("Submission graded",
		zap.String("player_id", player.ID),
		zap.String("game_id", game.ID),
		zap.Int("score", score),
		zap.Int("new_achievements", len(res.NewAchievements)))

	return &EvaluationResult{
		Attempt:         attempt,
		Player:          res.Player,
		Score:           score,
		Feedback:        feedback,
		Validation:      validation,
		NewAchievements: res.NewAchievements,
		Truncated:       truncated,
	}, nil
}

func (s *EvaluationService) grade(ctx context.Context, prompt string) (string, error) {
	if s.Config.GradingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Config.GradingTimeout)
		defer cancel()
	}
	return s.Grader.Grade(ctx, prompt)
}

func (s *EvaluationService) maxPromptChars() int {
	if s.Config.MaxPromptChars > 0 {
		return s.Config.MaxPromptChars
	}
	return DefaultMaxPromptChars
}

func (s *EvaluationService) maxSubmissionChars() int {
	if s.Config.MaxSubmissionChars > 0 {
		return s.Config.MaxSubmissionChars
	}
	return DefaultMaxSubmissionChars
}

// TruncatePrompt keeps the first limit runes of prompt.
func TruncatePrompt(prompt string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(prompt) <= limit {
		return prompt, false
	}
	runes := []rune(prompt)
	return string(runes[:limit]), true
}

func celebrate(score int) string {
	if score >= 95 {
		return fmt.Sprintf("Outstanding work: %d/100. That is reference-grade sourcing.", score)
	}
	return fmt.Sprintf("Great job: %d/100 puts this in the high-score club.", score)
}
