package scoring

import (
	"github.com/jonathan/cv-match/internal/types"
)

// Overall score weighting. Skills dominate because skill gaps are both the
// most common kind and the most mitigable via transferability credit;
// qualification gaps are rare and binary.
const (
	skillsWeight         = 0.5
	experienceWeight     = 0.35
	qualificationsWeight = 0.15
)

// FinalScores holds the blended score set returned to callers
type FinalScores struct {
	Overall        int `json:"overall_score"`
	Skills         int `json:"skills_score"`
	Experience     int `json:"experience_score"`
	Qualifications int `json:"qualifications_score"`

	// BaseSkills is the skills score before transferability credit
	BaseSkills int `json:"base_skills_score"`
}

// CalculateFinalScores blends the base scores with transferability credit
// for missing must-have requirements. Experience and qualifications pass
// through unchanged; the skills score is recomputed as
// (exact matches + transferability credit) / total must-haves, weighted
// 80/20 against the exact-match-only nice-to-have score and capped at 100.
func CalculateFinalScores(base BaseScores, assessments []types.TransferabilityAssessment, comparison *types.ComparisonResult) FinalScores {
	skills := skillsWithTransferability(base, assessments, comparison)

	overall := int(float64(skills)*skillsWeight +
		float64(base.Experience)*experienceWeight +
		float64(base.Qualifications)*qualificationsWeight)

	return FinalScores{
		Overall:        clampScore(overall),
		Skills:         skills,
		Experience:     clampScore(base.Experience),
		Qualifications: clampScore(base.Qualifications),
		BaseSkills:     clampScore(base.Skills),
	}
}

func skillsWithTransferability(base BaseScores, assessments []types.TransferabilityAssessment, comparison *types.ComparisonResult) int {
	// Sum transferability credit for requirements that are actually in the
	// missing must-have list; assessments for anything else carry no weight.
	missing := make(map[string]bool, len(comparison.MissingMustHave))
	for _, verdict := range comparison.MissingMustHave {
		missing[verdict.Requirement] = true
	}

	credit := 0.0
	for _, a := range assessments {
		if missing[a.Requirement] {
			credit += clampUnit(a.Score)
		}
	}

	// Credit cannot exceed the missing count, so mustScore stays within
	// [0, 100] here; only the blended result is clamped.
	mustScore := 100.0
	if totalMust := base.Breakdown.TotalMustCount; totalMust > 0 {
		mustScore = (float64(base.Breakdown.MatchedMustCount) + credit) / float64(totalMust) * 100
	}

	niceScore := 100.0
	if base.Breakdown.TotalNiceCount > 0 {
		niceScore = float64(base.Breakdown.MatchedNiceCount) / float64(base.Breakdown.TotalNiceCount) * 100
	}

	return clampScore(int(mustScore*mustHaveWeight + niceScore*niceToHaveWeight))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
