package matching

import (
	"context"
	"strings"
)

// skillOverlap is the shared exact+semantic pass behind both the skill score
// and the missing-skill detection.
type skillOverlap struct {
	jobCount int
	// direct counts job skills that have a case-insensitive exact match.
	direct int
	// remaining holds indices into the job skill list without an exact match,
	// in job order.
	remaining []int
	// best[k] is the highest similarity of job skill remaining[k] against any
	// unmatched resume skill. Nil when no semantic pass was possible.
	best []float64
}

func NormalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (e *Engine) overlapSkills(ctx context.Context, op string, resumeSkills, jobSkills []string) (skillOverlap, error) {
	ov := skillOverlap{jobCount: len(jobSkills)}

	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeSet[NormalizeSkill(s)] = struct{}{}
	}

	matched := make(map[string]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		n := NormalizeSkill(s)
		if _, ok := resumeSet[n]; ok {
			matched[n] = struct{}{}
		}
	}

	remainingJob := make([]string, 0, len(jobSkills))
	for i, s := range jobSkills {
		n := NormalizeSkill(s)
		if _, ok := matched[n]; ok {
			ov.direct++
			continue
		}
		ov.remaining = append(ov.remaining, i)
		remainingJob = append(remainingJob, n)
	}

	remainingResume := make([]string, 0, len(resumeSkills))
	for _, s := range resumeSkills {
		n := NormalizeSkill(s)
		if _, ok := matched[n]; ok {
			continue
		}
		remainingResume = append(remainingResume, n)
	}

	if len(remainingJob) == 0 || len(remainingResume) == 0 {
		return ov, nil
	}

	texts := make([]string, 0, len(remainingResume)+len(remainingJob))
	texts = append(texts, remainingResume...)
	texts = append(texts, remainingJob...)
	vecs, err := e.embedUnique(ctx, op, texts...)
	if err != nil {
		return skillOverlap{}, err
	}

	ov.best = make([]float64, len(remainingJob))
	for k, js := range remainingJob {
		best := -1.0
		for _, rs := range remainingResume {
			if sim := Cosine(vecs[rs], vecs[js]); sim > best {
				best = sim
			}
		}
		ov.best[k] = best
	}
	return ov, nil
}

// SkillsScore blends the exact-match ratio with the mean best semantic
// similarity of the unmatched job skills, weighted by their share.
func (e *Engine) SkillsScore(ctx context.Context, resumeSkills, jobSkills []string) (float64, error) {
	if len(resumeSkills) == 0 || len(jobSkills) == 0 {
		return 0, nil
	}

	ov, err := e.overlapSkills(ctx, "skills score", resumeSkills, jobSkills)
	if err != nil {
		return 0, err
	}

	total := float64(ov.jobCount)
	score := float64(ov.direct) / total
	if ov.best != nil {
		score += mean(ov.best) * float64(len(ov.remaining)) / total
	}
	return clamp01(score), nil
}

// MissingSkills returns the job skills, in job order and original casing, that
// have neither an exact match nor a semantic match above the skill
// equivalence threshold.
func (e *Engine) MissingSkills(ctx context.Context, resumeSkills, jobSkills []string) ([]string, error) {
	missing := make([]string, 0)
	if len(jobSkills) == 0 {
		return missing, nil
	}
	if len(resumeSkills) == 0 {
		return append(missing, jobSkills...), nil
	}

	ov, err := e.overlapSkills(ctx, "missing skills", resumeSkills, jobSkills)
	if err != nil {
		return nil, err
	}

	for k, idx := range ov.remaining {
		if ov.best != nil && ov.best[k] > e.thresholds.SkillEquivalence {
			continue
		}
		missing = append(missing, jobSkills[idx])
	}
	return missing, nil
}
