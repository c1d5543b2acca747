package types

import "time"

// Scores holds the component and overall scores, each in [0, 100]
type Scores struct {
	Overall        int `json:"overall_score"`
	Skills         int `json:"skills_score"`
	Experience     int `json:"experience_score"`
	Qualifications int `json:"qualifications_score"`
}

// TransferabilityAssessment rates how learnable one missing requirement is
// for this candidate, on a 0.0-1.0 scale. Computed only for missing
// must-have requirements; ephemeral within one match computation.
type TransferabilityAssessment struct {
	Requirement string  `json:"requirement"`
	Score       float64 `json:"transferability_score"`
	Reasoning   string  `json:"reasoning"`
	RampUpTime  string  `json:"ramp_up_time"`
}

// Explanation holds the human-readable rationale lists, each capped at five entries
type Explanation struct {
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
}

// MatchResult is the complete output of one match computation
type MatchResult struct {
	OverallScore        int `json:"overall_score"`
	SkillsScore         int `json:"skills_score"`
	ExperienceScore     int `json:"experience_score"`
	QualificationsScore int `json:"qualifications_score"`

	// BaseSkillsScore is the skills score before transferability credit
	BaseSkillsScore int `json:"base_skills_score"`

	MatchedSkills         []string `json:"matched_skills"`
	MissingSkills         []string `json:"missing_skills"`
	MatchedQualifications []string `json:"matched_qualifications"`
	MissingQualifications []string `json:"missing_qualifications"`

	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`

	Transferability []TransferabilityAssessment `json:"transferability_details"`

	AnalyzedAt    time.Time `json:"analyzed_at"`
	ScoringMethod string    `json:"scoring_method"`
}

// ScoresInRange reports whether all four scores are within [0, 100]
func (m *MatchResult) ScoresInRange() bool {
	for _, s := range []int{m.OverallScore, m.SkillsScore, m.ExperienceScore, m.QualificationsScore} {
		if s < 0 || s > 100 {
			return false
		}
	}
	return true
}
