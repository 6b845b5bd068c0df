package root

import (
	"context"
	"database/sql"
	"os"
	"strings"

	"go.uber.org/zap"

	"studyplan/internal/config"
	"studyplan/internal/engine"
	"studyplan/internal/logging"
	"studyplan/internal/storage"
)

const envDataDir = "STUDYPLAN_DATA_DIR"

// app bundles the services one command works with.
type app struct {
	svc     *engine.Service
	reviews *engine.ReviewService
	log     *zap.Logger
}

func resolveDataDir() (string, error) {
	if d := strings.TrimSpace(dataDir); d != "" {
		return d, nil
	}
	if d := strings.TrimSpace(os.Getenv(envDataDir)); d != "" {
		return d, nil
	}
	return storage.DefaultDataDir()
}

func openDB(ctx context.Context, path string) (*sql.DB, func(), error) {
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

// openService wires config, logging, the JSON store and the events database.
// A broken config degrades to defaults and a broken database to events.json,
// both with a warning instead of failing.
func openService(ctx context.Context) (*app, func(), error) {
	dir, err := resolveDataDir()
	if err != nil {
		return nil, nil, err
	}
	store := storage.NewStore(dir)
	_, seedErr := store.EnsureSeed()

	cfg, cfgErr := config.Load(store.ConfigPath())
	if cfgErr != nil {
		cfg = config.Default()
	}
	log, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	if seedErr != nil {
		log.Warn("seeding data dir failed", zap.String("dir", dir), zap.Error(seedErr))
	}
	if cfgErr != nil {
		log.Warn("config rejected, using defaults", zap.String("path", store.ConfigPath()), zap.Error(cfgErr))
	}

	opts := []engine.Option{engine.WithLogger(log)}
	cleanup := func() { _ = log.Sync() }

	db, closeDB, err := openDB(ctx, store.EventsPath())
	if err != nil {
		fallback := storage.NewJSONEventRepo(dir)
		log.Warn("events database unavailable, using json fallback",
			zap.String("path", store.EventsPath()), zap.String("fallback", fallback.Path()), zap.Error(err))
		opts = append(opts, engine.WithEvents(fallback))
	} else {
		opts = append(opts, engine.WithEvents(storage.NewEventRepo(db)))
		cleanup = func() {
			closeDB()
			_ = log.Sync()
		}
	}

	svc := engine.NewService(store, cfg, opts...)
	reviews := engine.NewReviewService(store.Reviews, cfg.Review, opts...)
	return &app{svc: svc, reviews: reviews, log: log}, cleanup, nil
}
