// Package pipeline orchestrates one match computation: normalize the
// inputs, compare requirements, score under the configured strategy, and
// render the explanation. The deterministic stages always run; LLM-backed
// stages degrade instead of failing the whole match.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/cv-match/internal/comparing"
	"github.com/jonathan/cv-match/internal/explain"
	"github.com/jonathan/cv-match/internal/skills"
	"github.com/jonathan/cv-match/internal/types"
)

// ProgressCallback receives stage names as the pipeline advances. Used by
// the CLI for verbose output; nil is allowed.
type ProgressCallback func(stage string)

// Pipeline stage names reported through ProgressCallback
const (
	StageNormalize = "normalize"
	StageCompare   = "compare"
	StageScore     = "score"
	StageExplain   = "explain"
)

// Matcher runs match computations under one scoring strategy
type Matcher struct {
	strategy  Strategy
	explainer *explain.Generator
	progress  ProgressCallback
}

// Option configures a Matcher
type Option func(*Matcher)

// WithProgress registers a stage callback
func WithProgress(cb ProgressCallback) Option {
	return func(m *Matcher) { m.progress = cb }
}

// NewMatcher creates a Matcher. A nil explainer is allowed; explanations
// then come from the templated fallback.
func NewMatcher(strategy Strategy, explainer *explain.Generator, opts ...Option) *Matcher {
	m := &Matcher{strategy: strategy, explainer: explainer}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match computes the full match result for one request. The request's CV
// facts and job requirements are not modified; normalization works on
// copies.
func (m *Matcher) Match(ctx context.Context, req *types.MatchRequest) (*types.MatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid match request: %w", err)
	}

	m.report(StageNormalize)
	cv := skills.NormalizeCVFacts(req.CVFacts)
	job := skills.NormalizeJobRequirements(req.Job)

	m.report(StageCompare)
	comparison := comparing.Compare(cv, job)

	m.report(StageScore)
	outcome, err := m.strategy.Score(ctx, Input{CV: cv, Job: job, Comparison: comparison})
	if err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}

	m.report(StageExplain)
	explanation := outcome.Explanation
	if explanation == nil {
		explanation = m.explain(ctx, cv, job, comparison, outcome)
	}

	result := &types.MatchResult{
		OverallScore:        outcome.Scores.Overall,
		SkillsScore:         outcome.Scores.Skills,
		ExperienceScore:     outcome.Scores.Experience,
		QualificationsScore: outcome.Scores.Qualifications,
		BaseSkillsScore:     outcome.Scores.BaseSkills,

		MatchedSkills:         requirementList(comparison.MatchedMustHave, comparison.MatchedNiceHave),
		MissingSkills:         requirementList(comparison.MissingMustHave, comparison.MissingNiceHave),
		MatchedQualifications: matchedQualifications(comparison),
		MissingQualifications: missingQualifications(comparison),

		Strengths:       explanation.Strengths,
		Gaps:            explanation.Gaps,
		Recommendations: explanation.Recommendations,

		Transferability: outcome.Assessments,

		AnalyzedAt:    time.Now().UTC(),
		ScoringMethod: outcome.Method,
	}

	if outcome.MatchedSkills != nil {
		result.MatchedSkills = outcome.MatchedSkills
	}
	if outcome.MissingSkills != nil {
		result.MissingSkills = outcome.MissingSkills
	}

	return result, nil
}

func (m *Matcher) explain(
	ctx context.Context,
	cv *types.CVFacts,
	job *types.JobRequirements,
	comparison *types.ComparisonResult,
	outcome Outcome,
) *types.Explanation {
	if m.explainer == nil {
		e := explain.Fallback(comparison)
		return &e
	}
	e := m.explainer.Generate(ctx, cv, job, comparison, outcome.Assessments, outcome.Scores)
	return &e
}

func (m *Matcher) report(stage string) {
	if m.progress != nil {
		m.progress(stage)
	}
}

func requirementList(groups ...[]types.RequirementVerdict) []string {
	list := []string{}
	for _, group := range groups {
		for _, verdict := range group {
			list = append(list, verdict.Requirement)
		}
	}
	return list
}

// matchedQualifications surfaces the education verdict as a qualification
// entry. Jobs with no degree requirement (evidence "N/A") contribute
// nothing.
func matchedQualifications(comparison *types.ComparisonResult) []string {
	quals := []string{}
	edu := comparison.EducationMatch
	if edu.Status == types.StatusMet && edu.Evidence != "N/A" {
		quals = append(quals, edu.Requirement)
	}
	return quals
}

func missingQualifications(comparison *types.ComparisonResult) []string {
	quals := []string{}
	if comparison.EducationMatch.Status == types.StatusNotMet {
		quals = append(quals, comparison.EducationMatch.Requirement)
	}
	return quals
}

// InputsHash produces a stable content hash over the CV facts and job
// requirements so cached results can be invalidated when either input
// changes.
func InputsHash(cv *types.CVFacts, job *types.JobRequirements) (string, error) {
	cvJSON, err := json.Marshal(cv)
	if err != nil {
		return "", fmt.Errorf("hashing cv facts: %w", err)
	}
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("hashing job requirements: %w", err)
	}

	h := sha256.New()
	h.Write(cvJSON)
	h.Write([]byte{0})
	h.Write(jobJSON)
	return hex.EncodeToString(h.Sum(nil)), nil
}
