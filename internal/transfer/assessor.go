// Package transfer assesses how transferable a candidate's background is
// toward requirements they do not meet. Ratings come from an external LLM
// capability with a fixed rubric; the assessor's job is fan-out, bounding,
// and per-item failure isolation.
package transfer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-match/internal/types"
)

// RatingInput is one bounded-scope rating request
type RatingInput struct {
	CVSkills    []string
	Requirement string
	CVYears     int
	CVDomain    []string
	JobDomain   string
}

// Rater rates the transferability of a single missing requirement on a
// 0.0-1.0 scale. Implementations may call external services; errors and
// out-of-range scores are handled by the Assessor.
type Rater interface {
	Rate(ctx context.Context, input RatingInput) (*types.TransferabilityAssessment, error)
}

// Assessor fans rating requests out to the Rater, one per missing
// requirement, and joins the results. A failed or malformed individual
// rating degrades to a zero score for that requirement only; one failure
// never aborts the batch. The external capability is unreliable and slow,
// so the batch must tolerate partial failure without cascading.
type Assessor struct {
	rater Rater
}

// NewAssessor creates an Assessor backed by the given rater. A nil rater
// is allowed and yields zero-credit assessments (rating not configured).
func NewAssessor(rater Rater) *Assessor {
	return &Assessor{rater: rater}
}

// Assess rates every missing requirement concurrently and returns exactly
// one assessment per input requirement, in input order.
func (a *Assessor) Assess(
	ctx context.Context,
	cvSkills []string,
	missing []types.RequirementVerdict,
	cvYears int,
	cvDomain []string,
	jobDomain string,
) []types.TransferabilityAssessment {
	assessments := make([]types.TransferabilityAssessment, len(missing))
	if len(missing) == 0 {
		return assessments
	}

	if a.rater == nil {
		for i, verdict := range missing {
			assessments[i] = fallbackAssessment(verdict.Requirement, "transferability rating not configured")
		}
		return assessments
	}

	g, gCtx := errgroup.WithContext(ctx)
	for i, verdict := range missing {
		g.Go(func() error {
			input := RatingInput{
				CVSkills:    cvSkills,
				Requirement: verdict.Requirement,
				CVYears:     cvYears,
				CVDomain:    cvDomain,
				JobDomain:   jobDomain,
			}

			result, err := a.rater.Rate(gCtx, input)
			if err != nil || result == nil {
				assessments[i] = fallbackAssessment(verdict.Requirement, ratingErrorReason(err))
				return nil
			}

			result.Requirement = verdict.Requirement
			result.Score = clampUnit(result.Score)
			if result.Reasoning == "" {
				result.Reasoning = "No reasoning provided"
			}
			if result.RampUpTime == "" {
				result.RampUpTime = "Unknown"
			}
			assessments[i] = *result
			return nil
		})
	}

	// Workers never return errors; degradation happens per slot.
	_ = g.Wait()

	return assessments
}

func fallbackAssessment(requirement, reasoning string) types.TransferabilityAssessment {
	return types.TransferabilityAssessment{
		Requirement: requirement,
		Score:       0.0,
		Reasoning:   reasoning,
		RampUpTime:  "Unknown",
	}
}

func ratingErrorReason(err error) string {
	if err == nil {
		return "Assessment failed: empty response"
	}
	return fmt.Sprintf("Assessment failed: %v", err)
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
