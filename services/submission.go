package services

import (
	"errors"
	"fmt"
	"sync"

	"sourcing-trainer/models"
)

// SubmissionState tracks one optimistic update on the Roster.
type SubmissionState int

const (
	SubmissionPending SubmissionState = iota
	SubmissionCommitted
	SubmissionRolledBack
)

func (s SubmissionState) String() string {
	switch s {
	case SubmissionPending:
		return "pending"
	case SubmissionCommitted:
		return "committed"
	case SubmissionRolledBack:
		return "rolled_back"
	}
	return fmt.Sprintf("SubmissionState(%d)", int(s))
}

// ErrSubmissionSettled is returned when a committed or rolled back submission is touched again.
var ErrSubmissionSettled = errors.New("submission already settled")

// Submission is the Pending → Committed | RolledBack state machine for one attempt.
type Submission struct {
	roster   *Roster
	playerID string
	before   *models.Player

	mu    sync.Mutex
	state SubmissionState
}

func (s *Submission) State() SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Before returns a copy of the pre-submission snapshot.
func (s *Submission) Before() *models.Player {
	return s.before.Clone()
}

// Apply publishes next on the roster ahead of persistence.
func (s *Submission) Apply(next *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SubmissionPending {
		return ErrSubmissionSettled
	}
	s.roster.Put(next)
	return nil
}

// Commit replaces the optimistic record with the persisted one.
func (s *Submission) Commit(persisted *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SubmissionPending {
		return ErrSubmissionSettled
	}
	s.roster.Put(persisted)
	s.state = SubmissionCommitted
	return nil
}

// Rollback restores the snapshot taken by Begin, byte for byte.
func (s *Submission) Rollback() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SubmissionPending {
		return ErrSubmissionSettled
	}
	s.roster.Put(s.before)
	s.state = SubmissionRolledBack
	return nil
}
