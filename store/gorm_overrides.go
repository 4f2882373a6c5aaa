package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sourcing-trainer/models"
)

type GormOverrideStore struct {
	DB *gorm.DB
}

func NewGormOverrideStore(db *gorm.DB) *GormOverrideStore {
	return &GormOverrideStore{DB: db}
}

func (s *GormOverrideStore) ListOverrides(ctx context.Context) ([]models.GameOverride, error) {
	var out []models.GameOverride
	if err := s.DB.WithContext(ctx).Order("game_id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	return out, nil
}

func (s *GormOverrideStore) UpsertOverride(ctx context.Context, o *models.GameOverride) error {
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}},
		UpdateAll: true,
	}).Create(o).Error
	if err != nil {
		return fmt.Errorf("upsert override: %w", err)
	}
	return nil
}
