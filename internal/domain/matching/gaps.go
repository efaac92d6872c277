package matching

import (
	"context"

	"recruit-engine/internal/domain/profile"

	"go.uber.org/zap"
)

func (e *Engine) DetectGaps(ctx context.Context, resume profile.Resume, job profile.Job) (GapResult, error) {
	missingSkills, err := e.MissingSkills(ctx, resume.Skills, job.Skills)
	if err != nil {
		return GapResult{}, err
	}

	missingReqs, err := e.MissingRequirements(ctx, resume, job.Requirements, e.thresholds.RequirementSatisfied)
	if err != nil {
		return GapResult{}, err
	}

	gaps := make([]string, 0, len(missingSkills)+len(missingReqs))
	gaps = append(gaps, missingSkills...)
	gaps = append(gaps, missingReqs...)

	e.logger.Debug("gaps detected",
		zap.Int("missing_skills", len(missingSkills)),
		zap.Int("missing_requirements", len(missingReqs)),
	)

	return GapResult{
		Gaps:                gaps,
		MissingSkills:       missingSkills,
		MissingRequirements: missingReqs,
	}, nil
}
