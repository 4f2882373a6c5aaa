package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"sourcing-trainer/models"
	"sourcing-trainer/store"
)

// GameCatalog serves the immutable game definitions with the admin override layer
// merged in at read time. Overrides change display fields only; Prompt always renders
// from the compiled base definition.
type GameCatalog struct {
	games     map[string]*models.Game
	order     []string
	overrides store.OverrideStore
	logger    *zap.Logger

	mu     sync.RWMutex
	active map[string]models.GameOverride
}

// LoadGames parses a games YAML document and compiles every prompt template.
func LoadGames(data []byte) ([]*models.Game, error) {
	var doc struct {
		Games []*models.Game `yaml:"games"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse games: %w", err)
	}
	seen := make(map[string]bool, len(doc.Games))
	for _, g := range doc.Games {
		if g.ID == "" {
			g.ID = slug.Make(g.Title)
		}
		if g.ID == "" {
			return nil, fmt.Errorf("game without id or title")
		}
		if seen[g.ID] {
			return nil, fmt.Errorf("duplicate game id %q", g.ID)
		}
		seen[g.ID] = true
		if g.Validation.Kind == "" {
			g.Validation.Kind = models.ValidationGeneral
		}
		if err := g.Compile(); err != nil {
			return nil, err
		}
	}
	return doc.Games, nil
}

func NewGameCatalog(games []*models.Game, overrides store.OverrideStore, logger *zap.Logger) *GameCatalog {
	c := &GameCatalog{
		games:     make(map[string]*models.Game, len(games)),
		overrides: overrides,
		logger:    logger,
		active:    make(map[string]models.GameOverride),
	}
	for _, g := range games {
		c.games[g.ID] = g
		c.order = append(c.order, g.ID)
	}
	return c
}

// Get returns the merged game for id. Inactive games are reported as not found.
func (c *GameCatalog) Get(id string) (models.Game, error) {
	g, ok := c.Lookup(id)
	if !ok || !g.Active {
		return models.Game{}, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

// Lookup returns the merged game for id regardless of its active flag.
func (c *GameCatalog) Lookup(id string) (models.Game, bool) {
	base, ok := c.games[id]
	if !ok {
		return models.Game{}, false
	}
	c.mu.RLock()
	o, has := c.active[id]
	c.mu.RUnlock()
	if !has {
		return *base, true
	}
	return base.WithOverride(&o), true
}

// List returns merged games in catalog order, featured first when requested.
func (c *GameCatalog) List(includeInactive bool) []models.Game {
	out := make([]models.Game, 0, len(c.order))
	for _, id := range c.order {
		g, _ := c.Lookup(id)
		if !g.Active && !includeInactive {
			continue
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Featured && !out[j].Featured
	})
	return out
}

// RefreshOverrides reloads the override layer from the store.
func (c *GameCatalog) RefreshOverrides(ctx context.Context) error {
	if c.overrides == nil {
		return nil
	}
	list, err := c.overrides.ListOverrides(ctx)
	if err != nil {
		return err
	}
	next := make(map[string]models.GameOverride, len(list))
	for _, o := range list {
		if _, known := c.games[o.GameID]; !known {
			c.logger.Warn("ignoring override for unknown game", zap.String("game_id", o.GameID))
			continue
		}
		next[o.GameID] = o
	}
	c.mu.Lock()
	c.active = next
	c.mu.Unlock()
	return nil
}

// SetOverride persists o and refreshes the merged view.
func (c *GameCatalog) SetOverride(ctx context.Context, o *models.GameOverride) error {
	if _, known := c.games[o.GameID]; !known {
		return fmt.Errorf("%w: %s", ErrGameNotFound, o.GameID)
	}
	if c.overrides == nil {
		return fmt.Errorf("%w: override store not configured", ErrPersistence)
	}
	if err := c.overrides.UpsertOverride(ctx, o); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return c.RefreshOverrides(ctx)
}
