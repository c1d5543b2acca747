package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-match/internal/types"
)

// stubRater rates from a fixed table and fails for anything not in it
type stubRater struct {
	ratings map[string]float64
}

func (s *stubRater) Rate(_ context.Context, input RatingInput) (*types.TransferabilityAssessment, error) {
	score, ok := s.ratings[input.Requirement]
	if !ok {
		return nil, errors.New("model unavailable")
	}
	return &types.TransferabilityAssessment{
		Score:      score,
		Reasoning:  "related tooling on the CV",
		RampUpTime: "1-2 months",
	}, nil
}

func missingVerdicts(reqs ...string) []types.RequirementVerdict {
	verdicts := make([]types.RequirementVerdict, len(reqs))
	for i, r := range reqs {
		verdicts[i] = types.RequirementVerdict{
			Requirement: r,
			Status:      types.StatusNotMet,
			Type:        types.RequirementSkill,
		}
	}
	return verdicts
}

func TestAssess_AllSucceed(t *testing.T) {
	assessor := NewAssessor(&stubRater{ratings: map[string]float64{
		"kubernetes": 0.8,
		"terraform":  0.4,
	}})

	got := assessor.Assess(context.Background(), []string{"docker"}, missingVerdicts("kubernetes", "terraform"), 5, nil, "")

	require.Len(t, got, 2)
	assert.Equal(t, "kubernetes", got[0].Requirement)
	assert.Equal(t, 0.8, got[0].Score)
	assert.Equal(t, "terraform", got[1].Requirement)
	assert.Equal(t, 0.4, got[1].Score)
}

func TestAssess_PartialFailureDegradesOnlyThatSlot(t *testing.T) {
	assessor := NewAssessor(&stubRater{ratings: map[string]float64{
		"kubernetes": 0.8,
		"kafka":      0.6,
	}})

	got := assessor.Assess(context.Background(), nil, missingVerdicts("kubernetes", "cobol", "kafka"), 5, nil, "")

	require.Len(t, got, 3)
	assert.Equal(t, 0.8, got[0].Score)

	assert.Equal(t, "cobol", got[1].Requirement)
	assert.Equal(t, 0.0, got[1].Score)
	assert.Contains(t, got[1].Reasoning, "Assessment failed")
	assert.Equal(t, "Unknown", got[1].RampUpTime)

	assert.Equal(t, 0.6, got[2].Score)
}

func TestAssess_ScoreClampedToUnitRange(t *testing.T) {
	assessor := NewAssessor(&stubRater{ratings: map[string]float64{
		"too high": 3.0,
		"too low":  -0.5,
	}})

	got := assessor.Assess(context.Background(), nil, missingVerdicts("too high", "too low"), 0, nil, "")

	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, 0.0, got[1].Score)
}

func TestAssess_EmptyMissing(t *testing.T) {
	assessor := NewAssessor(&stubRater{})

	got := assessor.Assess(context.Background(), nil, nil, 0, nil, "")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAssess_NilRater(t *testing.T) {
	assessor := NewAssessor(nil)

	got := assessor.Assess(context.Background(), nil, missingVerdicts("kubernetes"), 0, nil, "")

	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Score)
	assert.Equal(t, "transferability rating not configured", got[0].Reasoning)
}

func TestAssess_DefaultsForEmptyFields(t *testing.T) {
	rater := &defaultsRater{}
	assessor := NewAssessor(rater)

	got := assessor.Assess(context.Background(), nil, missingVerdicts("kubernetes"), 0, nil, "")

	require.Len(t, got, 1)
	assert.Equal(t, "No reasoning provided", got[0].Reasoning)
	assert.Equal(t, "Unknown", got[0].RampUpTime)
}

// defaultsRater returns a bare score with no reasoning or ramp-up time
type defaultsRater struct{}

func (d *defaultsRater) Rate(_ context.Context, _ RatingInput) (*types.TransferabilityAssessment, error) {
	return &types.TransferabilityAssessment{Score: 0.5}, nil
}
