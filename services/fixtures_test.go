package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sourcing-trainer/catalog"
	"sourcing-trainer/models"
	"sourcing-trainer/store"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	players    *store.MemoryPlayerStore
	overrides  *store.MemoryOverrideStore
	catalog    *GameCatalog
	engine     *AchievementEngine
	roster     *Roster
	reconciler *Reconciler
	eval       *EvaluationService
	accounts   *PlayerService
	prompts    []string
}

// newTestEnv wires the pipeline over the embedded catalogs and an in-memory store.
// reply is returned by the grader for every prompt.
func newTestEnv(t *testing.T, reply string) *testEnv {
	t.Helper()
	env := &testEnv{}
	return env.build(t, GraderFunc(func(_ context.Context, prompt string) (string, error) {
		env.prompts = append(env.prompts, prompt)
		return reply, nil
	}))
}

func newTestEnvWithGrader(t *testing.T, g Grader) *testEnv {
	t.Helper()
	return (&testEnv{}).build(t, g)
}

func (env *testEnv) build(t *testing.T, g Grader) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	games, err := LoadGames(catalog.Games)
	require.NoError(t, err)
	defs, err := LoadAchievements(catalog.Achievements)
	require.NoError(t, err)
	engine, err := NewAchievementEngine(defs)
	require.NoError(t, err)

	env.players = store.NewMemoryPlayerStore()
	env.overrides = store.NewMemoryOverrideStore()
	env.catalog = NewGameCatalog(games, env.overrides, logger)
	env.engine = engine
	env.roster = NewRoster()
	env.reconciler = &Reconciler{
		Store:  env.players,
		Engine: engine,
		Roster: env.roster,
		Logger: logger,
		Now:    func() time.Time { return testNow },
	}
	env.eval = &EvaluationService{
		Players:    env.players,
		Catalog:    env.catalog,
		Grader:     g,
		Reconciler: env.reconciler,
		Logger:     logger,
		Now:        func() time.Time { return testNow },
	}
	env.accounts = NewPlayerService(env.players, env.roster, logger)
	return env
}

func (env *testEnv) register(t *testing.T, name string) *models.Player {
	t.Helper()
	p, err := env.accounts.Register(context.Background(), name, "")
	require.NoError(t, err)
	return p
}

// failingSaves rejects every SaveProgress call.
type failingSaves struct {
	*store.MemoryPlayerStore
	calls int
}

func (f *failingSaves) SaveProgress(context.Context, *models.Player) error {
	f.calls++
	return errors.New("connection reset")
}

func achievementIDs(list []models.Achievement) []string {
	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	return ids
}
