package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-match/internal/comparing"
	"github.com/jonathan/cv-match/internal/llm"
	"github.com/jonathan/cv-match/internal/skills"
	"github.com/jonathan/cv-match/internal/transfer"
	"github.com/jonathan/cv-match/internal/types"
)

// fakeJSONClient satisfies llm.Client with canned JSON
type fakeJSONClient struct {
	response string
	err      error
}

func (f *fakeJSONClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeJSONClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeJSONClient) GetModel(_ llm.ModelTier) string { return "fake" }

func (f *fakeJSONClient) Close() error { return nil }

// fixedRater always returns the same score
type fixedRater struct {
	score float64
}

func (r *fixedRater) Rate(_ context.Context, input transfer.RatingInput) (*types.TransferabilityAssessment, error) {
	return &types.TransferabilityAssessment{
		Requirement: input.Requirement,
		Score:       r.score,
		Reasoning:   "fixed",
		RampUpTime:  "1 month",
	}, nil
}

func strategyInput() Input {
	cv := skills.NormalizeCVFacts(&types.CVFacts{
		Skills:               []string{"python", "docker"},
		YearsExperienceTotal: 6,
	})
	job := skills.NormalizeJobRequirements(&types.JobRequirements{
		MustHave: []string{"python", "kubernetes"},
	})
	return Input{CV: cv, Job: job, Comparison: comparing.Compare(cv, job)}
}

func TestRulesStrategy(t *testing.T) {
	outcome, err := NewRulesStrategy().Score(context.Background(), strategyInput())
	require.NoError(t, err)

	assert.Equal(t, "rules", outcome.Method)
	assert.Empty(t, outcome.Assessments)
	// 1/2 must matched, no nice: 50*0.8 + 100*0.2 = 60
	assert.Equal(t, 60, outcome.Scores.Skills)
	assert.Equal(t, outcome.Scores.BaseSkills, outcome.Scores.Skills)
}

func TestHybridStrategy_AddsTransferabilityCredit(t *testing.T) {
	assessor := transfer.NewAssessor(&fixedRater{score: 0.5})
	outcome, err := NewHybridStrategy(assessor).Score(context.Background(), strategyInput())
	require.NoError(t, err)

	assert.Equal(t, "hybrid", outcome.Method)
	require.Len(t, outcome.Assessments, 1)
	assert.Equal(t, "kubernetes", outcome.Assessments[0].Requirement)
	// (1 + 0.5)/2 * 100 * 0.8 + 100*0.2 = 80
	assert.Equal(t, 80, outcome.Scores.Skills)
	assert.Equal(t, 60, outcome.Scores.BaseSkills)
}

func TestHybridStrategy_RaterFailureDegradesToBase(t *testing.T) {
	assessor := transfer.NewAssessor(nil)
	outcome, err := NewHybridStrategy(assessor).Score(context.Background(), strategyInput())
	require.NoError(t, err)

	require.Len(t, outcome.Assessments, 1)
	assert.Equal(t, 0.0, outcome.Assessments[0].Score)
	assert.Equal(t, outcome.Scores.BaseSkills, outcome.Scores.Skills)
}

func TestAIStrategy_Holistic(t *testing.T) {
	client := &fakeJSONClient{response: `{
		"overall_score": 82,
		"skills_score": 85,
		"experience_score": 80,
		"qualifications_score": 75,
		"matched_skills": ["python"],
		"missing_skills": ["kubernetes"],
		"strengths": ["Solid Python background"],
		"gaps": ["Kubernetes gap"],
		"recommendations": ["Pick up Kubernetes"]
	}`}

	outcome, err := NewAIStrategy(client).Score(context.Background(), strategyInput())
	require.NoError(t, err)

	assert.Equal(t, "ai", outcome.Method)
	assert.Equal(t, 82, outcome.Scores.Overall)
	assert.Equal(t, 85, outcome.Scores.Skills)
	require.NotNil(t, outcome.Explanation)
	assert.Equal(t, []string{"Kubernetes gap"}, outcome.Explanation.Gaps)
	assert.Equal(t, []string{"python"}, outcome.MatchedSkills)
}

func TestAIStrategy_ClampsScores(t *testing.T) {
	client := &fakeJSONClient{response: `{
		"overall_score": 140,
		"skills_score": -5,
		"experience_score": 100,
		"qualifications_score": 100
	}`}

	outcome, err := NewAIStrategy(client).Score(context.Background(), strategyInput())
	require.NoError(t, err)

	assert.Equal(t, 100, outcome.Scores.Overall)
	assert.Equal(t, 0, outcome.Scores.Skills)
}

func TestAIStrategy_FallsBackToRules(t *testing.T) {
	client := &fakeJSONClient{err: errors.New("model overloaded")}

	outcome, err := NewAIStrategy(client).Score(context.Background(), strategyInput())
	require.NoError(t, err)

	assert.Equal(t, "rules_fallback", outcome.Method)
	assert.Equal(t, 60, outcome.Scores.Skills)
	assert.Nil(t, outcome.Explanation)
}

func TestAIStrategy_MalformedResponseFallsBack(t *testing.T) {
	client := &fakeJSONClient{response: "sorry, I can't do that"}

	outcome, err := NewAIStrategy(client).Score(context.Background(), strategyInput())
	require.NoError(t, err)

	assert.Equal(t, "rules_fallback", outcome.Method)
}

func TestAIStrategy_NilClientFallsBack(t *testing.T) {
	outcome, err := NewAIStrategy(nil).Score(context.Background(), strategyInput())
	require.NoError(t, err)

	assert.Equal(t, "rules_fallback", outcome.Method)
}
