package services

import (
	"sync"

	"sourcing-trainer/models"
)

// Roster is the live, in-process view of player records handed to readers. It runs
// ahead of the store while a submission is pending.
type Roster struct {
	mu      sync.Mutex
	players map[string]*models.Player
}

func NewRoster() *Roster {
	return &Roster{players: make(map[string]*models.Player)}
}

// Get returns a copy of the live record for id.
func (r *Roster) Get(id string) (*models.Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Put replaces the live record with a copy of p.
func (r *Roster) Put(p *models.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[p.ID] = p.Clone()
}

// Begin syncs the live record to durable and snapshots it as the rollback point.
func (r *Roster) Begin(durable *models.Player) *Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[durable.ID] = durable.Clone()
	return &Submission{
		roster:   r,
		playerID: durable.ID,
		before:   durable.Clone(),
		state:    SubmissionPending,
	}
}
