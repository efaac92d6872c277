package app

import (
	"context"
	"fmt"

	"recruit-engine/internal/config"
	"recruit-engine/internal/domain/matching"
	"recruit-engine/internal/domain/scheduling"
	"recruit-engine/internal/infrastructure/cache"
	"recruit-engine/internal/infrastructure/embedding"
	"recruit-engine/internal/usecase"

	"go.uber.org/zap"
)

// Container owns the long-lived dependencies shared by the HTTP server and
// the CLI.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	Cache      *cache.Redis
	Oracle     matching.Oracle
	Engine     *matching.Engine
	Solver     *scheduling.Solver
	Matching   *usecase.Matching
	Scheduling *usecase.Scheduling
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	base, err := embedding.New(ctx, cfg.Oracle, logger)
	if err != nil {
		return nil, fmt.Errorf("build similarity oracle: %w", err)
	}
	oracle := matching.Oracle(embedding.NewInstrumented(base, cfg.Oracle.Provider, cfg.Oracle.Model, logger))

	var redis *cache.Redis
	if cfg.Redis.Enabled {
		redis = cache.NewRedis(cfg.Redis, logger)
		oracle = embedding.NewCached(oracle, redis, cfg.Oracle.Model, cfg.Redis.TTL, logger)
	}

	engine := matching.NewEngine(oracle,
		matching.WithThresholds(matching.Thresholds{
			SkillEquivalence:     cfg.Match.SkillThreshold,
			RequirementSatisfied: cfg.Match.RequirementThreshold,
		}),
		matching.WithWeights(matching.Weights{
			Skills:       cfg.Match.SkillsWeight,
			Experience:   cfg.Match.ExperienceWeight,
			Requirements: cfg.Match.RequirementsWeight,
		}),
		matching.WithLogger(logger.Named("matching")),
	)

	solver := scheduling.NewSolver(
		scheduling.WithDefaultTimezone(cfg.Schedule.DefaultTimezone),
		scheduling.WithLogger(logger.Named("scheduling")),
	)

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Cache:      redis,
		Oracle:     oracle,
		Engine:     engine,
		Solver:     solver,
		Matching:   usecase.NewMatchingUsecase(engine, cfg.Oracle.Timeout, logger),
		Scheduling: usecase.NewSchedulingUsecase(solver),
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.Cache == nil {
		return nil
	}
	return c.Cache.Close()
}
