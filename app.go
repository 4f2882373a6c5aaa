package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sourcing-trainer/catalog"
	"sourcing-trainer/config"
	"sourcing-trainer/services"
	"sourcing-trainer/store"
	"sourcing-trainer/utils"
)

// application holds the wired service graph shared by every command.
type application struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *gorm.DB
	players   store.PlayerStore
	overrides store.OverrideStore

	catalog      *services.GameCatalog
	achievements *services.AchievementEngine
	accounts     *services.PlayerService
	evaluation   *services.EvaluationService
	leaderboards *services.LeaderboardService
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := utils.InitLogger(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

// openStores picks the in-memory store or Postgres, migrating the latter.
func openStores(cfg *config.Config, logger *zap.Logger) (*gorm.DB, store.PlayerStore, store.OverrideStore, error) {
	if cfg.UseMemoryStore {
		logger.Warn("Using in-memory store, player records will not survive a restart")
		return nil, store.NewMemoryPlayerStore(), store.NewMemoryOverrideStore(), nil
	}
	db, err := store.OpenPostgres(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := store.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}
	return db, store.NewGormPlayerStore(db), store.NewGormOverrideStore(db), nil
}

func newApplication(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*application, error) {
	db, players, overrides, err := openStores(cfg, logger)
	if err != nil {
		return nil, err
	}

	games, err := services.LoadGames(catalog.Games)
	if err != nil {
		return nil, err
	}
	defs, err := services.LoadAchievements(catalog.Achievements)
	if err != nil {
		return nil, err
	}
	engine, err := services.NewAchievementEngine(defs)
	if err != nil {
		return nil, err
	}

	gameCatalog := services.NewGameCatalog(games, overrides, logger)
	if err := gameCatalog.RefreshOverrides(ctx); err != nil {
		logger.Warn("Could not load game overrides", zap.Error(err))
	}

	genaiCfg := services.DefaultGenAIConfig(cfg.GeminiAPIKey)
	genaiCfg.Model = cfg.GeminiModel
	genaiCfg.HTTPClient = utils.NewHTTPClient(cfg.GradingTimeout)
	grader, err := services.NewGenAIGrader(ctx, genaiCfg)
	if err != nil {
		return nil, err
	}
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, every submission will fail grading")
	}

	roster := services.NewRoster()
	app := &application{
		cfg:          cfg,
		logger:       logger,
		db:           db,
		players:      players,
		overrides:    overrides,
		catalog:      gameCatalog,
		achievements: engine,
		accounts:     services.NewPlayerService(players, roster, logger),
		leaderboards: services.NewLeaderboardService(players),
	}
	app.evaluation = &services.EvaluationService{
		Players: players,
		Catalog: gameCatalog,
		Grader:  grader,
		Reconciler: &services.Reconciler{
			Store:  players,
			Engine: engine,
			Roster: roster,
			Logger: logger,
		},
		Config: services.EvaluationConfig{
			MaxPromptChars:     cfg.MaxPromptChars,
			MaxSubmissionChars: cfg.MaxSubmissionChars,
			GradingTimeout:     cfg.GradingTimeout,
		},
		Logger: logger,
	}
	return app, nil
}

func (a *application) Close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.logger.Sync()
}
