// Package store persists player records and game overrides.
package store

import (
	"context"
	"errors"

	"sourcing-trainer/models"
)

var (
	// ErrNotFound indicates no record matched the lookup key.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a unique key (player name or session token) is taken.
	ErrConflict = errors.New("record already exists")
)

// PlayerStore is the durable home of player records. SaveProgress writes score,
// attempts and achievements in one operation keyed by player id; concurrent writers
// for the same id are last-write-wins.
type PlayerStore interface {
	Create(ctx context.Context, p *models.Player) error
	GetBySessionToken(ctx context.Context, token string) (*models.Player, error)
	GetByID(ctx context.Context, id string) (*models.Player, error)
	GetByNameKey(ctx context.Context, nameKey string) (*models.Player, error)
	SaveProgress(ctx context.Context, p *models.Player) error
	SetPinHash(ctx context.Context, id, pinHash string) error
	// List returns every player in a stable order (creation time, then id).
	List(ctx context.Context) ([]models.Player, error)
}

// OverrideStore holds admin-edited display overrides for catalog games.
type OverrideStore interface {
	ListOverrides(ctx context.Context) ([]models.GameOverride, error)
	UpsertOverride(ctx context.Context, o *models.GameOverride) error
}
