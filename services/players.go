package services

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
	"golang.org/x/text/cases"

	"sourcing-trainer/models"
	"sourcing-trainer/store"
)

const (
	MinNameLength = 2
	MaxNameLength = 24
	MinPINLength  = 4
	MaxPINLength  = 8
)

// PlayerService issues and resolves session credentials.
type PlayerService struct {
	Store  store.PlayerStore
	Roster *Roster
	Logger *zap.Logger
}

func NewPlayerService(s store.PlayerStore, roster *Roster, logger *zap.Logger) *PlayerService {
	return &PlayerService{Store: s, Roster: roster, Logger: logger}
}

// NameKey is the case-folded uniqueness key for a display name.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// HashPIN derives the stored PIN hash. The name key is the salt, so the same
// name and PIN always produce the same hash.
func HashPIN(nameKey, pin string) string {
	sum := argon2.IDKey([]byte(pin), []byte("sourcing-trainer:"+nameKey), 1, 19*1024, 1, 32)
	return hex.EncodeToString(sum)
}

// Register creates a player and mints its session token. pin may be empty.
func (s *PlayerService) Register(ctx context.Context, name, pin string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	key := NameKey(name)

	var pinHash string
	if pin != "" {
		if err := validatePIN(pin); err != nil {
			return nil, err
		}
		pinHash = HashPIN(key, pin)
	}

	p := &models.Player{
		Name:         name,
		NameKey:      key,
		SessionToken: uuid.NewString(),
		PinHash:      pinHash,
	}
	if err := s.Store.Create(ctx, p); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, fmt.Errorf("%w: name %q is taken", ErrConflict, name)
		}
		return nil, fmt.Errorf("%w: create player: %v", ErrPersistence, err)
	}
	s.Roster.Put(p)
	s.Logger.Info("Player registered", zap.String("player_id", p.ID), zap.Bool("pin", p.HasPIN()))
	return p, nil
}

// Claim returns the existing player, token included, when name and PIN match.
func (s *PlayerService) Claim(ctx context.Context, name, pin string) (*models.Player, error) {
	p, err := s.Store.GetByNameKey(ctx, NameKey(name))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: name or PIN incorrect", ErrAuth)
		}
		return nil, fmt.Errorf("%w: load player: %v", ErrPersistence, err)
	}
	if !p.HasPIN() {
		return nil, fmt.Errorf("%w: name or PIN incorrect", ErrAuth)
	}
	got := HashPIN(p.NameKey, pin)
	if subtle.ConstantTimeCompare([]byte(got), []byte(p.PinHash)) != 1 {
		s.Logger.Info("Failed claim attempt", zap.String("player_id", p.ID))
		return nil, fmt.Errorf("%w: name or PIN incorrect", ErrAuth)
	}
	return p, nil
}

// SetPIN attaches or replaces the PIN of the session's player.
func (s *PlayerService) SetPIN(ctx context.Context, token, pin string) error {
	p, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}
	if err := validatePIN(pin); err != nil {
		return err
	}
	if err := s.Store.SetPinHash(ctx, p.ID, HashPIN(p.NameKey, pin)); err != nil {
		return fmt.Errorf("%w: set pin: %v", ErrPersistence, err)
	}
	return nil
}

// Authenticate resolves a session token to the durable player record.
func (s *PlayerService) Authenticate(ctx context.Context, token string) (*models.Player, error) {
	return authenticate(ctx, s.Store, token)
}

// Profile returns the live view of the player, which runs ahead of the store while a
// submission is pending. A live record whose attempt log is behind the store was
// written elsewhere and is replaced.
func (s *PlayerService) Profile(ctx context.Context, token string) (*models.Player, error) {
	p, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if live, ok := s.Roster.Get(p.ID); ok && len(live.Attempts) >= len(p.Attempts) {
		return live, nil
	}
	s.Roster.Put(p)
	return p, nil
}

func authenticate(ctx context.Context, players store.PlayerStore, token string) (*models.Player, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: missing session token", ErrAuth)
	}
	p, err := players.GetBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown session", ErrAuth)
		}
		return nil, fmt.Errorf("%w: load player: %v", ErrPersistence, err)
	}
	return p, nil
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength {
		return fmt.Errorf("%w: name must be %d-%d characters", ErrValidation, MinNameLength, MaxNameLength)
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return fmt.Errorf("%w: name contains unprintable characters", ErrValidation)
		}
	}
	return nil
}

func validatePIN(pin string) error {
	if len(pin) < MinPINLength || len(pin) > MaxPINLength {
		return fmt.Errorf("%w: PIN must be %d-%d digits", ErrValidation, MinPINLength, MaxPINLength)
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: PIN must be digits only", ErrValidation)
		}
	}
	return nil
}
