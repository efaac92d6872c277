package matching

import (
	"context"

	"recruit-engine/internal/domain/profile"
)

// requirementSimilarities returns the similarity of the flattened resume to
// every requirement, in requirement order. ok is false when the resume has no
// text to compare against.
func (e *Engine) requirementSimilarities(ctx context.Context, op string, resume profile.Resume, requirements []string) (sims []float64, ok bool, err error) {
	doc := resume.Document()
	if doc == "" {
		return nil, false, nil
	}

	vecs, err := e.embedUnique(ctx, op, append([]string{doc}, requirements...)...)
	if err != nil {
		return nil, false, err
	}

	sims = make([]float64, 0, len(requirements))
	for _, r := range requirements {
		sims = append(sims, Cosine(vecs[doc], vecs[r]))
	}
	return sims, true, nil
}

func (e *Engine) RequirementsScore(ctx context.Context, resume profile.Resume, requirements []string) (float64, error) {
	if len(requirements) == 0 {
		return 0, nil
	}
	sims, ok, err := e.requirementSimilarities(ctx, "requirements score", resume, requirements)
	if err != nil || !ok {
		return 0, err
	}
	return mean(sims), nil
}

// MissingRequirements lists requirements whose similarity to the resume is
// strictly below threshold, in job order. An empty resume misses everything.
func (e *Engine) MissingRequirements(ctx context.Context, resume profile.Resume, requirements []string, threshold float64) ([]string, error) {
	missing := make([]string, 0)
	if len(requirements) == 0 {
		return missing, nil
	}

	sims, ok, err := e.requirementSimilarities(ctx, "missing requirements", resume, requirements)
	if err != nil {
		return nil, err
	}
	if !ok {
		return append(missing, requirements...), nil
	}

	for i, sim := range sims {
		if sim < threshold {
			missing = append(missing, requirements[i])
		}
	}
	return missing, nil
}
