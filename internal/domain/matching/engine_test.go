package matching

import (
	"context"
	"errors"
	"sync"
	"testing"

	"recruit-engine/internal/domain/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableOracle struct {
	mu      sync.Mutex
	vectors map[string]Vector
	calls   [][]string
	err     error
	short   bool
}

func (o *tableOracle) Embed(_ context.Context, texts []string) ([]Vector, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, append([]string(nil), texts...))
	if o.err != nil {
		return nil, o.err
	}
	out := make([]Vector, 0, len(texts))
	for _, t := range texts {
		v, ok := o.vectors[t]
		if !ok {
			v = Vector{0, 0, 0, 1}
		}
		out = append(out, v)
	}
	if o.short && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (o *tableOracle) callCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.calls)
}

func newTableOracle() *tableOracle {
	return &tableOracle{vectors: map[string]Vector{
		"golang":              {1, 0, 0, 0},
		"go":                  {1, 0, 0, 0},
		"kubernetes":          {0, 1, 0, 0},
		"rust":                {0, 0, 1, 0},
		"Built APIs Engineer": {1, 0, 0, 0},
		"Design APIs":         {1, 0, 0, 0},
		"Cook food":           {0, 1, 0, 0},
		"Skills: Go":          {1, 0, 0, 0},
		"Go experience":       {1, 0, 0, 0},
		"Pilot license":       {0, 1, 0, 0},
	}}
}

func TestSkillsScore_EqualListsIgnoreCase(t *testing.T) {
	o := newTableOracle()
	e := NewEngine(o)

	score, err := e.SkillsScore(context.Background(), []string{"Python", "SQL"}, []string{"python", "sql"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
	assert.Zero(t, o.callCount())
}

func TestSkillsScore_EmptyInputs(t *testing.T) {
	e := NewEngine(newTableOracle())

	score, err := e.SkillsScore(context.Background(), nil, []string{"Python"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	score, err = e.SkillsScore(context.Background(), []string{"Python"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestSkillsScore_BlendsSemanticRemainder(t *testing.T) {
	o := newTableOracle()
	e := NewEngine(o)

	// python matches exactly (1/3); go matches golang at 1.0 and kubernetes at 0,
	// so the semantic mean 0.5 carries a weight of 2/3.
	score, err := e.SkillsScore(context.Background(),
		[]string{"Python", "golang"},
		[]string{"python", "Go", "Kubernetes"},
	)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, score, 1e-9)

	require.Equal(t, 1, o.callCount())
	assert.ElementsMatch(t, []string{"golang", "go", "kubernetes"}, o.calls[0])
}

func TestSkillsScore_StaysInUnitRange(t *testing.T) {
	o := newTableOracle()
	o.vectors["java"] = Vector{-1, 0, 0, 0}
	e := NewEngine(o)

	score, err := e.SkillsScore(context.Background(), []string{"golang"}, []string{"Java"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestMissingSkills_PreservesJobOrderAndCasing(t *testing.T) {
	e := NewEngine(newTableOracle())

	missing, err := e.MissingSkills(context.Background(),
		[]string{"python", "golang"},
		[]string{"Rust", "Python", "Kubernetes", "Go"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust", "Kubernetes"}, missing)
}

func TestMissingSkills_ThresholdIsStrict(t *testing.T) {
	o := newTableOracle()
	o.vectors["scaled golang"] = Vector{2, 0, 0, 0}
	e := NewEngine(o, WithThresholds(Thresholds{SkillEquivalence: 1}))

	missing, err := e.MissingSkills(context.Background(), []string{"golang"}, []string{"Scaled Golang"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Scaled Golang"}, missing)
}

func TestMissingSkills_EmptyResumeMissesEverything(t *testing.T) {
	o := newTableOracle()
	e := NewEngine(o)

	missing, err := e.MissingSkills(context.Background(), nil, []string{"Python"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Python"}, missing)
	assert.Zero(t, o.callCount())
}

func TestMissingSkills_ExactMatchNeverMissing(t *testing.T) {
	e := NewEngine(newTableOracle())

	missing, err := e.MissingSkills(context.Background(), []string{"Python", "SQL"}, []string{"Python", "SQL"})
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.NotNil(t, missing)
}

func TestExperienceScore(t *testing.T) {
	o := newTableOracle()
	e := NewEngine(o)

	exp := []profile.Experience{{Title: "Engineer", Description: "Built APIs"}}
	score, err := e.ExperienceScore(context.Background(), exp, []string{"Design APIs", "Cook food"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score, 1e-9)
	require.Equal(t, 1, o.callCount())
	assert.Equal(t, []string{"Built APIs Engineer", "Design APIs", "Cook food"}, o.calls[0])
}

func TestExperienceScore_NothingToCompare(t *testing.T) {
	o := newTableOracle()
	e := NewEngine(o)

	score, err := e.ExperienceScore(context.Background(), []profile.Experience{{Company: "Acme"}}, []string{"Design APIs"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	score, err = e.ExperienceScore(context.Background(), []profile.Experience{{Title: "Engineer"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
	assert.Zero(t, o.callCount())
}

func TestRequirements(t *testing.T) {
	e := NewEngine(newTableOracle())
	resume := profile.Resume{Skills: []string{"Go"}}
	reqs := []string{"Go experience", "Pilot license"}

	score, err := e.RequirementsScore(context.Background(), resume, reqs)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score, 1e-9)

	missing, err := e.MissingRequirements(context.Background(), resume, reqs, DefaultRequirementSatisfiedThreshold)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pilot license"}, missing)
}

func TestRequirements_EmptyResume(t *testing.T) {
	o := newTableOracle()
	e := NewEngine(o)
	reqs := []string{"Go experience", "Pilot license"}

	score, err := e.RequirementsScore(context.Background(), profile.Resume{}, reqs)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	missing, err := e.MissingRequirements(context.Background(), profile.Resume{}, reqs, 0.6)
	require.NoError(t, err)
	assert.Equal(t, reqs, missing)
	assert.Zero(t, o.callCount())
}

func TestRequirements_BlankEducationStillCompared(t *testing.T) {
	o := newTableOracle()
	o.vectors["Education: "] = Vector{1, 0, 0, 0}
	e := NewEngine(o)
	resume := profile.Resume{Education: []profile.Education{{}}}

	missing, err := e.MissingRequirements(context.Background(), resume, []string{"Go experience", "Pilot license"}, 0.6)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pilot license"}, missing)
	assert.Equal(t, 1, o.callCount())
}

func TestMatch_WeightedAndRounded(t *testing.T) {
	e := NewEngine(newTableOracle())
	resume := profile.Resume{
		Skills:     []string{"Go"},
		Experience: []profile.Experience{{Title: "Engineer", Description: "Built APIs"}},
	}
	job := profile.Job{
		Skills:           []string{"Go", "Kubernetes"},
		Requirements:     []string{"Go experience"},
		Responsibilities: []string{"Design APIs", "Cook food"},
	}

	res, err := e.Match(context.Background(), resume, job)
	require.NoError(t, err)

	assert.Equal(t, 0.5, res.SkillsScore)
	assert.Equal(t, 0.5, res.ExperienceScore)
	want := Round2(0.5*res.SkillsScore + 0.3*res.ExperienceScore + 0.2*res.RequirementsScore)
	assert.InDelta(t, want, res.OverallScore, 0.01)

	again, err := e.Match(context.Background(), resume, job)
	require.NoError(t, err)
	assert.Equal(t, res, again)
}

func TestMatch_ScenarioIdenticalSkills(t *testing.T) {
	e := NewEngine(newTableOracle())
	resume := profile.Resume{Skills: []string{"Python", "SQL"}}
	job := profile.Job{Skills: []string{"Python", "SQL"}}

	res, err := e.Match(context.Background(), resume, job)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.SkillsScore)
	assert.Equal(t, 0.5, res.OverallScore)

	gaps, err := e.DetectGaps(context.Background(), resume, job)
	require.NoError(t, err)
	assert.Empty(t, gaps.MissingSkills)
	assert.Empty(t, gaps.Gaps)
}

func TestDetectGaps_ConcatenatesSkillsThenRequirements(t *testing.T) {
	e := NewEngine(newTableOracle())
	resume := profile.Resume{Skills: []string{"Go"}}
	job := profile.Job{
		Skills:       []string{"Rust", "Go"},
		Requirements: []string{"Go experience", "Pilot license"},
	}

	res, err := e.DetectGaps(context.Background(), resume, job)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust"}, res.MissingSkills)
	assert.Equal(t, []string{"Pilot license"}, res.MissingRequirements)
	assert.Equal(t, []string{"Rust", "Pilot license"}, res.Gaps)
}

func TestDetectGaps_EmptyResumeSkills(t *testing.T) {
	e := NewEngine(newTableOracle())

	res, err := e.DetectGaps(context.Background(), profile.Resume{}, profile.Job{Skills: []string{"Python"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Python"}, res.MissingSkills)
	assert.Empty(t, res.MissingRequirements)
}

func TestOracleFailurePropagates(t *testing.T) {
	cause := errors.New("connection refused")
	o := newTableOracle()
	o.err = cause
	e := NewEngine(o)

	_, err := e.Match(context.Background(),
		profile.Resume{Skills: []string{"golang"}},
		profile.Job{Skills: []string{"Go"}},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOracleFailure)
	assert.ErrorIs(t, err, cause)

	_, err = e.DetectGaps(context.Background(),
		profile.Resume{Skills: []string{"golang"}},
		profile.Job{Skills: []string{"Go"}},
	)
	assert.ErrorIs(t, err, ErrOracleFailure)
}

func TestOracleContractViolation(t *testing.T) {
	o := newTableOracle()
	o.short = true
	e := NewEngine(o)

	_, err := e.SkillsScore(context.Background(), []string{"golang"}, []string{"Go"})
	assert.ErrorIs(t, err, ErrOracleFailure)
}

func TestCompose(t *testing.T) {
	res := Compose(-0.2, 1.4, 0.5, DefaultWeights())
	assert.Equal(t, 0.0, res.SkillsScore)
	assert.Equal(t, 1.0, res.ExperienceScore)
	assert.Equal(t, 0.5, res.RequirementsScore)
	assert.Equal(t, 0.4, res.OverallScore)
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 0.5, Round2(0.5))
	assert.Equal(t, 0.33, Round2(1.0/3.0))
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine(Vector{1, 2}, Vector{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, Cosine(Vector{1, 0}, Vector{0, 1}), 1e-9)
	assert.Equal(t, 0.0, Cosine(Vector{0, 0}, Vector{1, 1}))
}

func TestWithWeights_RejectsInvalid(t *testing.T) {
	e := NewEngine(newTableOracle(), WithWeights(Weights{Skills: -1, Experience: 1, Requirements: 1}))
	assert.Equal(t, DefaultWeights(), e.weights)

	e = NewEngine(newTableOracle(), WithWeights(Weights{Skills: 0.6, Experience: 0.2, Requirements: 0.2}))
	assert.Equal(t, 0.6, e.weights.Skills)
}
