package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"sourcing-trainer/models"
)

// MemoryPlayerStore keeps players in process memory. Records are cloned on the way in
// and out so callers never share slices with the store.
type MemoryPlayerStore struct {
	mu      sync.RWMutex
	players map[string]*models.Player
	order   []string
	now     func() time.Time
}

func NewMemoryPlayerStore() *MemoryPlayerStore {
	return &MemoryPlayerStore{
		players: make(map[string]*models.Player),
		now:     time.Now,
	}
}

func (s *MemoryPlayerStore) Create(_ context.Context, p *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.players {
		if existing.NameKey == p.NameKey || existing.SessionToken == p.SessionToken {
			return ErrConflict
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.players[p.ID] = p.Clone()
	s.order = append(s.order, p.ID)
	return nil
}

func (s *MemoryPlayerStore) GetBySessionToken(_ context.Context, token string) (*models.Player, error) {
	return s.find(func(p *models.Player) bool { return p.SessionToken == token })
}

func (s *MemoryPlayerStore) GetByID(_ context.Context, id string) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (s *MemoryPlayerStore) GetByNameKey(_ context.Context, nameKey string) (*models.Player, error) {
	return s.find(func(p *models.Player) bool { return p.NameKey == nameKey })
}

func (s *MemoryPlayerStore) find(match func(*models.Player) bool) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if p := s.players[id]; match(p) {
			return p.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryPlayerStore) SaveProgress(_ context.Context, p *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.players[p.ID]
	if !ok {
		return ErrNotFound
	}
	next := p.Clone()
	cur.Score = next.Score
	cur.Attempts = next.Attempts
	cur.Achievements = next.Achievements
	cur.UpdatedAt = s.now()
	return nil
}

func (s *MemoryPlayerStore) SetPinHash(_ context.Context, id, pinHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.players[id]
	if !ok {
		return ErrNotFound
	}
	cur.PinHash = pinHash
	return nil
}

func (s *MemoryPlayerStore) List(_ context.Context) ([]models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Player, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.players[id].Clone())
	}
	return out, nil
}

// MemoryOverrideStore is the in-process OverrideStore.
type MemoryOverrideStore struct {
	mu        sync.RWMutex
	overrides map[string]models.GameOverride
}

func NewMemoryOverrideStore() *MemoryOverrideStore {
	return &MemoryOverrideStore{overrides: make(map[string]models.GameOverride)}
}

func (s *MemoryOverrideStore) ListOverrides(_ context.Context) ([]models.GameOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.GameOverride, 0, len(s.overrides))
	for _, o := range s.overrides {
		out = append(out, o)
	}
	return out, nil
}

func (s *MemoryOverrideStore) UpsertOverride(_ context.Context, o *models.GameOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.UpdatedAt = time.Now()
	s.overrides[o.GameID] = *o
	return nil
}
