package usecase

import (
	"context"
	"errors"
	"fmt"

	"recruit-engine/internal/domain/matching"
)

var (
	ErrOracleUnavailable = errors.New("similarity oracle unavailable")
	ErrOracleTimeout     = errors.New("similarity oracle timed out")
	ErrInternal          = errors.New("internal error")
)

// mapEngineError translates domain failures into usecase errors, keeping the
// cause in the chain for logging.
func mapEngineError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrOracleTimeout, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrInternal, err)
	case errors.Is(err, matching.ErrOracleFailure):
		return fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}
