package commands

import (
	"fmt"
	"os"

	"github.com/sectorlab/sectorpulse/internal/classify"
	"github.com/sectorlab/sectorpulse/internal/external/stooq"
	"github.com/sectorlab/sectorpulse/internal/pipeline"
	"github.com/sectorlab/sectorpulse/internal/ratios"
	"github.com/sectorlab/sectorpulse/internal/report"
	"github.com/sectorlab/sectorpulse/internal/snapshot"
	"github.com/sectorlab/sectorpulse/internal/universe"
	"github.com/sectorlab/sectorpulse/pkg/config"
	"github.com/sectorlab/sectorpulse/pkg/database"
	"github.com/sectorlab/sectorpulse/pkg/httputil"
	"github.com/sectorlab/sectorpulse/pkg/logger"
	"github.com/sectorlab/sectorpulse/pkg/redis"
)

// app holds the wired components shared by the CLI commands
type app struct {
	cfg       *config.Config
	logger    *logger.Logger
	db        *database.DB
	redis     *redis.Client
	universe  *universe.Config
	ingestor  *ratios.Ingestor
	snapshots *snapshot.Repository
	runner    *pipeline.Runner
}

// newApp loads config and wires the full weekly flow. Close must be
// called when done.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	uniCfg, err := loadUniverse(cfg, log)
	if err != nil {
		return nil, err
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	httpClient := httputil.New(log)
	stooqClient := stooq.NewClient(httpClient, log, cfg.Stooq.BaseURL)

	store := ratios.NewStore(db.Pool)
	cache := redis.NewCache(redisClient, "sectorpulse")
	provider := ratios.NewProvider(store, cache, cfg.Stooq.CacheTTL, log)
	ingestor := ratios.NewIngestor(stooqClient, store, cfg.Stooq.Lookback, log)

	u := uniCfg.Universe()
	engine, err := classify.NewEngine(u, uniCfg.Window.Size, uniCfg.Window.Epsilon, log)
	if err != nil {
		redisClient.Close()
		db.Close()
		return nil, fmt.Errorf("build engine: %w", err)
	}

	snapshots := snapshot.NewRepository(db.Pool)
	briefs := report.NewWriter(cfg.BriefDir, log)
	runner := pipeline.NewRunner(u, uniCfg.Window.Size, ingestor, provider, engine, snapshots, briefs, log)

	return &app{
		cfg:       cfg,
		logger:    log,
		db:        db,
		redis:     redisClient,
		universe:  uniCfg,
		ingestor:  ingestor,
		snapshots: snapshots,
		runner:    runner,
	}, nil
}

func (a *app) Close() {
	a.redis.Close()
	a.db.Close()
}

// loadUniverse reads the universe config file, falling back to the
// built-in default when no file is present.
func loadUniverse(cfg *config.Config, log *logger.Logger) (*universe.Config, error) {
	path := cfg.UniverseFile
	if universeFile != "" {
		path = universeFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.WithField("path", path).Info("Universe file not found, using built-in default")
		return universe.Default(), nil
	}

	uniCfg, err := universe.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load universe config: %w", err)
	}

	hash, err := universe.Hash(uniCfg)
	if err != nil {
		return nil, fmt.Errorf("hash universe config: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"path": path,
		"hash": hash[:12],
	}).Info("Universe config loaded")

	return uniCfg, nil
}
