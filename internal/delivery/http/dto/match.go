package dto

import (
	"recruit-engine/internal/domain/matching"
	"recruit-engine/internal/domain/profile"
)

type EducationRequest struct {
	Degree      string `json:"degree" validate:"max=300"`
	Field       string `json:"field" validate:"max=300"`
	Institution string `json:"institution" validate:"max=300"`
	Year        string `json:"year" validate:"max=50"`
}

type ExperienceRequest struct {
	Title       string `json:"title" validate:"max=300"`
	Company     string `json:"company" validate:"max=300"`
	Duration    string `json:"duration" validate:"max=100"`
	Description string `json:"description" validate:"max=10000"`
}

type ResumeRequest struct {
	Skills     []string            `json:"skills" validate:"max=200,dive,max=200"`
	Education  []EducationRequest  `json:"education" validate:"max=50,dive"`
	Experience []ExperienceRequest `json:"experience" validate:"max=100,dive"`
}

type JobRequest struct {
	Skills           []string `json:"skills" validate:"max=200,dive,max=200"`
	Requirements     []string `json:"requirements" validate:"max=100,dive,max=2000"`
	Responsibilities []string `json:"responsibilities" validate:"max=100,dive,max=2000"`
}

// MatchRequest is the body of both the match and the gap detection endpoints.
type MatchRequest struct {
	Resume *ResumeRequest `json:"resume" validate:"required"`
	Job    *JobRequest    `json:"job" validate:"required"`
}

func (r ResumeRequest) ToDomain() profile.Resume {
	out := profile.Resume{
		Skills:     append([]string(nil), r.Skills...),
		Education:  make([]profile.Education, 0, len(r.Education)),
		Experience: make([]profile.Experience, 0, len(r.Experience)),
	}
	for _, e := range r.Education {
		out.Education = append(out.Education, profile.Education{
			Degree:      e.Degree,
			Field:       e.Field,
			Institution: e.Institution,
			Year:        e.Year,
		})
	}
	for _, e := range r.Experience {
		out.Experience = append(out.Experience, profile.Experience{
			Title:       e.Title,
			Company:     e.Company,
			Duration:    e.Duration,
			Description: e.Description,
		})
	}
	return out
}

func (r JobRequest) ToDomain() profile.Job {
	return profile.Job{
		Skills:           append([]string(nil), r.Skills...),
		Requirements:     append([]string(nil), r.Requirements...),
		Responsibilities: append([]string(nil), r.Responsibilities...),
	}
}

type MatchResponse struct {
	OverallScore      float64 `json:"overallScore"`
	SkillsScore       float64 `json:"skillsScore"`
	ExperienceScore   float64 `json:"experienceScore"`
	RequirementsScore float64 `json:"requirementsScore"`
}

func NewMatchResponse(r matching.Result) MatchResponse {
	return MatchResponse{
		OverallScore:      r.OverallScore,
		SkillsScore:       r.SkillsScore,
		ExperienceScore:   r.ExperienceScore,
		RequirementsScore: r.RequirementsScore,
	}
}

type GapResponse struct {
	Gaps                []string `json:"gaps"`
	MissingSkills       []string `json:"missingSkills"`
	MissingRequirements []string `json:"missingRequirements"`
}

func NewGapResponse(r matching.GapResult) GapResponse {
	return GapResponse{
		Gaps:                nonNil(r.Gaps),
		MissingSkills:       nonNil(r.MissingSkills),
		MissingRequirements: nonNil(r.MissingRequirements),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
