// Package scoring computes the deterministic base scores and the final
// blended scores for a CV/job comparison. Everything here is pure integer
// math: re-running with identical inputs yields bit-identical output, so
// any stakeholder can recompute a score from the comparison table.
package scoring

import (
	"strings"

	"github.com/jonathan/cv-match/internal/types"
)

// Skills score weighting between requirement tiers
const (
	mustHaveWeight   = 0.8
	niceToHaveWeight = 0.2
)

// BaseScores holds the deterministic component scores before transferability credit
type BaseScores struct {
	Skills         int `json:"skills_score"`
	Experience     int `json:"experience_score"`
	Qualifications int `json:"qualifications_score"`

	Breakdown Breakdown `json:"breakdown"`
}

// Breakdown carries the match counts the scores were derived from
type Breakdown struct {
	MatchedMustCount int `json:"matched_must_count"`
	TotalMustCount   int `json:"total_must_count"`
	MatchedNiceCount int `json:"matched_nice_count"`
	TotalNiceCount   int `json:"total_nice_count"`
}

// CalculateBaseScores computes component scores from the comparison result
// using exact matches only.
func CalculateBaseScores(comparison *types.ComparisonResult, cv *types.CVFacts, job *types.JobRequirements) BaseScores {
	breakdown := Breakdown{
		MatchedMustCount: len(comparison.MatchedMustHave),
		TotalMustCount:   comparison.TotalMustHave(),
		MatchedNiceCount: len(comparison.MatchedNiceHave),
		TotalNiceCount:   comparison.TotalNiceToHave(),
	}

	return BaseScores{
		Skills:         skillsScore(breakdown),
		Experience:     experienceScore(comparison, cv, job),
		Qualifications: qualificationsScore(comparison),
		Breakdown:      breakdown,
	}
}

// skillsScore weights must-have matches at 80% and nice-to-have at 20%.
// An absent requirement category scores 100: absence of requirements is
// never penalized.
func skillsScore(b Breakdown) int {
	mustScore := 100.0
	if b.TotalMustCount > 0 {
		mustScore = float64(b.MatchedMustCount) / float64(b.TotalMustCount) * 100
	}

	niceScore := 100.0
	if b.TotalNiceCount > 0 {
		niceScore = float64(b.MatchedNiceCount) / float64(b.TotalNiceCount) * 100
	}

	return int(mustScore*mustHaveWeight + niceScore*niceToHaveWeight)
}

// experienceScore assigns a tier from the ratio of CV years to required
// years, with absolute-years tiers when the job states no requirement, and
// a +10 seniority bonus (capped at 100) when a senior/lead role matches a
// seniority signal on the CV.
func experienceScore(comparison *types.ComparisonResult, cv *types.CVFacts, job *types.JobRequirements) int {
	cvYears := comparison.ExperienceMatch.CVYears
	jobYears := comparison.ExperienceMatch.RequiredYears

	var score int
	if jobYears == 0 {
		switch {
		case cvYears >= 10:
			score = 100
		case cvYears >= 5:
			score = 90
		case cvYears >= 2:
			score = 70
		default:
			score = 50
		}
	} else {
		ratio := float64(cvYears) / float64(jobYears)
		switch {
		case ratio >= 1.5:
			score = 100
		case ratio >= 1.0:
			score = 90
		case ratio >= 0.75:
			score = 70
		case ratio >= 0.5:
			score = 50
		default:
			score = 30
		}
	}

	if seniorRoleRequested(job) && hasSenioritySignal(cv) {
		score = min(100, score+10)
	}

	return score
}

// qualificationsScore is 100 when the education requirement is met, else 60.
// The floor is deliberate: informal training still has some value, so a
// missing degree never zeroes the component.
func qualificationsScore(comparison *types.ComparisonResult) int {
	if comparison.EducationMatch.Status == types.StatusMet {
		return 100
	}
	return 60
}

func seniorRoleRequested(job *types.JobRequirements) bool {
	level := strings.ToLower(job.RoleLevel)
	return strings.Contains(level, "senior") || strings.Contains(level, "lead")
}

// HasSenioritySignal reports whether any seniority signal on the CV marks
// the candidate as senior or lead.
func HasSenioritySignal(cv *types.CVFacts) bool {
	return hasSenioritySignal(cv)
}

func hasSenioritySignal(cv *types.CVFacts) bool {
	for _, signal := range cv.SenioritySignals {
		lower := strings.ToLower(signal)
		if strings.Contains(lower, "senior") || strings.Contains(lower, "lead") {
			return true
		}
	}
	return false
}
