package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sourcing-trainer/models"
)

type GormPlayerStore struct {
	DB *gorm.DB
}

func NewGormPlayerStore(db *gorm.DB) *GormPlayerStore {
	return &GormPlayerStore{DB: db}
}

// Create inserts p, assigning its id.
func (s *GormPlayerStore) Create(ctx context.Context, p *models.Player) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

func (s *GormPlayerStore) GetBySessionToken(ctx context.Context, token string) (*models.Player, error) {
	return s.first(ctx, "session_token = ?", token)
}

func (s *GormPlayerStore) GetByID(ctx context.Context, id string) (*models.Player, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormPlayerStore) GetByNameKey(ctx context.Context, nameKey string) (*models.Player, error) {
	return s.first(ctx, "name_key = ?", nameKey)
}

func (s *GormPlayerStore) first(ctx context.Context, query string, arg any) (*models.Player, error) {
	var p models.Player
	if err := s.DB.WithContext(ctx).Where(query, arg).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load player: %w", err)
	}
	return &p, nil
}

// SaveProgress writes score, attempts and achievements in a single UPDATE, so a
// reader never sees the score without the attempt that produced it.
func (s *GormPlayerStore) SaveProgress(ctx context.Context, p *models.Player) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Player{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"score":        p.Score,
			"attempts":     p.Attempts,
			"achievements": p.Achievements,
		})
	if res.Error != nil {
		return fmt.Errorf("save player progress: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormPlayerStore) SetPinHash(ctx context.Context, id, pinHash string) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Player{}).
		Where("id = ?", id).
		Update("pin_hash", pinHash)
	if res.Error != nil {
		return fmt.Errorf("set pin hash: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormPlayerStore) List(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := s.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}
