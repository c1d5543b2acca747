package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jonathan/cv-match/internal/llm"
	"github.com/jonathan/cv-match/internal/prompts"
	"github.com/jonathan/cv-match/internal/scoring"
	"github.com/jonathan/cv-match/internal/skills"
	"github.com/jonathan/cv-match/internal/transfer"
	"github.com/jonathan/cv-match/internal/types"
)

// Input carries the normalized facts and comparison into a scoring strategy
type Input struct {
	CV         *types.CVFacts
	Job        *types.JobRequirements
	Comparison *types.ComparisonResult
}

// Outcome is a strategy's scoring verdict. Explanation, MatchedSkills and
// MissingSkills are optional overrides; when nil the pipeline derives them
// from the comparison and the explanation generator.
type Outcome struct {
	Scores      scoring.FinalScores
	Assessments []types.TransferabilityAssessment
	Explanation *types.Explanation
	Method      string

	MatchedSkills []string
	MissingSkills []string
}

// Strategy computes match scores for one CV/job pair. Implementations
// must be safe for concurrent use.
type Strategy interface {
	Name() string
	Score(ctx context.Context, in Input) (Outcome, error)
}

// RulesStrategy scores purely from the rule-based comparison. Fully
// deterministic and usable with no LLM configured.
type RulesStrategy struct{}

func NewRulesStrategy() *RulesStrategy { return &RulesStrategy{} }

func (s *RulesStrategy) Name() string { return "rules" }

func (s *RulesStrategy) Score(_ context.Context, in Input) (Outcome, error) {
	base := scoring.CalculateBaseScores(in.Comparison, in.CV, in.Job)
	final := scoring.CalculateFinalScores(base, nil, in.Comparison)
	return Outcome{
		Scores:      final,
		Assessments: []types.TransferabilityAssessment{},
		Method:      s.Name(),
	}, nil
}

// HybridStrategy layers LLM transferability credit on top of the
// deterministic base scores. This is the default strategy.
type HybridStrategy struct {
	assessor *transfer.Assessor
}

func NewHybridStrategy(assessor *transfer.Assessor) *HybridStrategy {
	return &HybridStrategy{assessor: assessor}
}

func (s *HybridStrategy) Name() string { return "hybrid" }

func (s *HybridStrategy) Score(ctx context.Context, in Input) (Outcome, error) {
	base := scoring.CalculateBaseScores(in.Comparison, in.CV, in.Job)

	assessments := s.assessor.Assess(
		ctx,
		allTech(in.CV),
		in.Comparison.MissingMustHave,
		in.CV.YearsExperienceTotal,
		in.CV.DomainExpertise,
		in.Job.Domain,
	)

	final := scoring.CalculateFinalScores(base, assessments, in.Comparison)
	return Outcome{
		Scores:      final,
		Assessments: assessments,
		Method:      s.Name(),
	}, nil
}

// AIStrategy delegates the entire scoring judgment to a single holistic
// LLM call. On any failure it falls back to rule-based scoring so a match
// request always produces a result.
type AIStrategy struct {
	client   llm.Client
	fallback *RulesStrategy
}

func NewAIStrategy(client llm.Client) *AIStrategy {
	return &AIStrategy{client: client, fallback: NewRulesStrategy()}
}

func (s *AIStrategy) Name() string { return "ai" }

// holisticResponse is the expected JSON shape from the holistic match prompt
type holisticResponse struct {
	OverallScore        int      `json:"overall_score"`
	SkillsScore         int      `json:"skills_score"`
	ExperienceScore     int      `json:"experience_score"`
	QualificationsScore int      `json:"qualifications_score"`
	MatchedSkills       []string `json:"matched_skills"`
	MissingSkills       []string `json:"missing_skills"`
	Strengths           []string `json:"strengths"`
	Gaps                []string `json:"gaps"`
	Recommendations     []string `json:"recommendations"`
}

func (s *AIStrategy) Score(ctx context.Context, in Input) (Outcome, error) {
	outcome, err := s.scoreHolistic(ctx, in)
	if err == nil {
		return outcome, nil
	}

	fallback, fbErr := s.fallback.Score(ctx, in)
	if fbErr != nil {
		return Outcome{}, fmt.Errorf("holistic scoring failed (%v) and rules fallback failed: %w", err, fbErr)
	}
	fallback.Method = "rules_fallback"
	return fallback, nil
}

func (s *AIStrategy) scoreHolistic(ctx context.Context, in Input) (Outcome, error) {
	if s.client == nil {
		return Outcome{}, fmt.Errorf("llm client not configured")
	}

	cvJSON, err := json.MarshalIndent(in.CV, "", "  ")
	if err != nil {
		return Outcome{}, err
	}
	jobJSON, err := json.MarshalIndent(in.Job, "", "  ")
	if err != nil {
		return Outcome{}, err
	}

	template := prompts.MustGet("matching.json", "holistic-match")
	prompt := prompts.Format(template, map[string]string{
		"CVFacts":         string(cvJSON),
		"JobRequirements": string(jobJSON),
	})

	jsonResp, err := s.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return Outcome{}, fmt.Errorf("holistic match request failed: %w", err)
	}

	var response holisticResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(jsonResp)), &response); err != nil {
		return Outcome{}, fmt.Errorf("malformed holistic match response: %w", err)
	}

	scores := scoring.FinalScores{
		Overall:        clamp(response.OverallScore),
		Skills:         clamp(response.SkillsScore),
		Experience:     clamp(response.ExperienceScore),
		Qualifications: clamp(response.QualificationsScore),
		BaseSkills:     clamp(response.SkillsScore),
	}

	return Outcome{
		Scores:      scores,
		Assessments: []types.TransferabilityAssessment{},
		Explanation: &types.Explanation{
			Strengths:       emptyIfNil(response.Strengths),
			Gaps:            emptyIfNil(response.Gaps),
			Recommendations: emptyIfNil(response.Recommendations),
		},
		Method:        s.Name(),
		MatchedSkills: response.MatchedSkills,
		MissingSkills: response.MissingSkills,
	}, nil
}

// allTech flattens the CV's canonical technology vocabulary into a sorted
// list so strategy output is stable across runs.
func allTech(cv *types.CVFacts) []string {
	set := skills.AllCVTech(cv)
	tech := make([]string, 0, len(set))
	for t := range set {
		tech = append(tech, t)
	}
	sort.Strings(tech)
	return tech
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
