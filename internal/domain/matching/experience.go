package matching

import (
	"context"

	"recruit-engine/internal/domain/profile"
)

// ExperienceScore is the mean similarity between the combined experience text
// and each responsibility.
func (e *Engine) ExperienceScore(ctx context.Context, experience []profile.Experience, responsibilities []string) (float64, error) {
	if len(responsibilities) == 0 {
		return 0, nil
	}
	combined := profile.ExperienceText(experience)
	if combined == "" {
		return 0, nil
	}

	vecs, err := e.embedUnique(ctx, "experience score", append([]string{combined}, responsibilities...)...)
	if err != nil {
		return 0, err
	}

	sims := make([]float64, 0, len(responsibilities))
	for _, r := range responsibilities {
		sims = append(sims, Cosine(vecs[combined], vecs[r]))
	}
	return mean(sims), nil
}
