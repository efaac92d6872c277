package main

import (
	"errors"
	"fmt"

	"recruit-engine/internal/app"
	"recruit-engine/internal/delivery/http/dto"
	"recruit-engine/internal/domain/scheduling"
	"recruit-engine/internal/infrastructure/cache"
	"recruit-engine/internal/infrastructure/embedding"
	"recruit-engine/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errCacheDisabled = errors.New("embedding cache is disabled, set REDIS_ENABLED=true")

func newMatchCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score a resume against a job description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.MatchRequest
			if err := c.readRequest(fileFlag(cmd), &req); err != nil {
				return err
			}

			container, err := c.container(cmd)
			if err != nil {
				return err
			}
			defer container.Close()

			res, err := container.Matching.Match(commandContext(cmd), req.Resume.ToDomain(), req.Job.ToDomain())
			if err != nil {
				return err
			}
			return c.print(dto.NewMatchResponse(res))
		},
	}
	addFileFlag(cmd)
	return cmd
}

func newGapsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "List job skills and requirements the resume does not cover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.MatchRequest
			if err := c.readRequest(fileFlag(cmd), &req); err != nil {
				return err
			}

			container, err := c.container(cmd)
			if err != nil {
				return err
			}
			defer container.Close()

			res, err := container.Matching.DetectGaps(commandContext(cmd), req.Resume.ToDomain(), req.Job.ToDomain())
			if err != nil {
				return err
			}
			return c.print(dto.NewGapResponse(res))
		},
	}
	addFileFlag(cmd)
	return cmd
}

// newSlotsCmd never touches the similarity oracle, so it builds the solver
// directly instead of the full container.
func newSlotsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Propose interview slots around existing bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.ScheduleRequest
			if err := c.readRequest(fileFlag(cmd), &req); err != nil {
				return err
			}

			cfg, log, err := c.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			solver := scheduling.NewSolver(
				scheduling.WithDefaultTimezone(cfg.Schedule.DefaultTimezone),
				scheduling.WithLogger(log.Named("scheduling")),
			)
			res := usecase.NewSchedulingUsecase(solver).Slots(commandContext(cmd), req.Bookings(), req.DomainPreferences())
			return c.print(dto.NewScheduleResponse(res))
		},
	}
	addFileFlag(cmd)
	return cmd
}

func newCacheCmd(c *cli) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the embedding cache",
	}

	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete cached embeddings for the configured model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := c.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if !cfg.Redis.Enabled {
				return errCacheDisabled
			}

			redis := cache.NewRedis(cfg.Redis, log)
			defer redis.Close()
			if !redis.Available() {
				return fmt.Errorf("redis at %s is unreachable", cfg.Redis.Addr())
			}

			pattern := embedding.KeyPattern(cfg.Oracle.Model)
			deleted, err := redis.DeleteByPattern(commandContext(cmd), pattern)
			if err != nil {
				return err
			}
			log.Info("cache purged", zap.String("pattern", pattern), zap.Int("deleted", deleted))
			return c.print(map[string]any{"pattern": pattern, "deleted": deleted})
		},
	}

	cacheCmd.AddCommand(purge)
	return cacheCmd
}

func (c *cli) container(cmd *cobra.Command) (*app.Container, error) {
	cfg, log, err := c.load()
	if err != nil {
		return nil, err
	}
	return app.NewContainer(commandContext(cmd), cfg, log)
}
