package matching

import (
	"context"
	"math"

	"recruit-engine/internal/domain/profile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSkillEquivalenceThreshold     = 0.75
	DefaultRequirementSatisfiedThreshold = 0.6

	DefaultSkillsWeight       = 0.5
	DefaultExperienceWeight   = 0.3
	DefaultRequirementsWeight = 0.2
)

type Thresholds struct {
	// SkillEquivalence is the similarity a job skill's best resume match must
	// exceed to not be reported missing.
	SkillEquivalence float64
	// RequirementSatisfied is the similarity below which a requirement is missing.
	RequirementSatisfied float64
}

type Weights struct {
	Skills       float64
	Experience   float64
	Requirements float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		SkillEquivalence:     DefaultSkillEquivalenceThreshold,
		RequirementSatisfied: DefaultRequirementSatisfiedThreshold,
	}
}

func DefaultWeights() Weights {
	return Weights{
		Skills:       DefaultSkillsWeight,
		Experience:   DefaultExperienceWeight,
		Requirements: DefaultRequirementsWeight,
	}
}

type Result struct {
	OverallScore      float64
	SkillsScore       float64
	ExperienceScore   float64
	RequirementsScore float64
}

type GapResult struct {
	Gaps                []string
	MissingSkills       []string
	MissingRequirements []string
}

type Engine struct {
	oracle     Oracle
	thresholds Thresholds
	weights    Weights
	logger     *zap.Logger
}

type Option func(*Engine)

func WithThresholds(t Thresholds) Option {
	return func(e *Engine) {
		if t.SkillEquivalence > 0 && t.SkillEquivalence <= 1 {
			e.thresholds.SkillEquivalence = t.SkillEquivalence
		}
		if t.RequirementSatisfied > 0 && t.RequirementSatisfied <= 1 {
			e.thresholds.RequirementSatisfied = t.RequirementSatisfied
		}
	}
}

func WithWeights(w Weights) Option {
	return func(e *Engine) {
		if w.Skills < 0 || w.Experience < 0 || w.Requirements < 0 {
			return
		}
		if w.Skills+w.Experience+w.Requirements <= 0 {
			return
		}
		e.weights = w
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewEngine(oracle Oracle, opts ...Option) *Engine {
	e := &Engine{
		oracle:     oracle,
		thresholds: DefaultThresholds(),
		weights:    DefaultWeights(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Match scores the resume against the job. The three component matchers run
// concurrently; the first oracle failure cancels the others and is returned.
func (e *Engine) Match(ctx context.Context, resume profile.Resume, job profile.Job) (Result, error) {
	var skills, experience, requirements float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := e.SkillsScore(gctx, resume.Skills, job.Skills)
		skills = s
		return err
	})
	g.Go(func() error {
		s, err := e.ExperienceScore(gctx, resume.Experience, job.Responsibilities)
		experience = s
		return err
	})
	g.Go(func() error {
		s, err := e.RequirementsScore(gctx, resume, job.Requirements)
		requirements = s
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Compose(skills, experience, requirements, e.weights)
	e.logger.Debug("match computed",
		zap.Float64("overall", res.OverallScore),
		zap.Float64("skills", res.SkillsScore),
		zap.Float64("experience", res.ExperienceScore),
		zap.Float64("requirements", res.RequirementsScore),
	)
	return res, nil
}

// Compose clamps the raw component scores to [0,1], weights them and rounds
// all four values to two decimals.
func Compose(skills, experience, requirements float64, w Weights) Result {
	s := clamp01(skills)
	x := clamp01(experience)
	r := clamp01(requirements)

	overall := w.Skills*s + w.Experience*x + w.Requirements*r

	return Result{
		OverallScore:      Round2(clamp01(overall)),
		SkillsScore:       Round2(s),
		ExperienceScore:   Round2(x),
		RequirementsScore: Round2(r),
	}
}

// Round2 rounds to two decimals, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
