// Package explain renders human-readable strengths, gaps, and
// recommendations from structured match results. Generation is delegated
// to an LLM under a strict only-cite-supplied-facts constraint; any
// failure falls back to templated output so the caller never receives an
// empty or error response.
package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/cv-match/internal/llm"
	"github.com/jonathan/cv-match/internal/prompts"
	"github.com/jonathan/cv-match/internal/scoring"
	"github.com/jonathan/cv-match/internal/types"
)

// maxEntries caps each explanation list
const maxEntries = 5

// maxExperienceEntries bounds how many positions go into the prompt
const maxExperienceEntries = 3

// transferableThreshold selects which assessments are worth mentioning
const transferableThreshold = 0.5

// Generator produces explanations for a completed match computation
type Generator struct {
	client llm.Client
}

// NewGenerator creates a Generator. A nil client is allowed; all
// explanations then come from the templated fallback.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// explanationResponse is the expected JSON shape from the explanation prompt
type explanationResponse struct {
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
}

// Generate renders the explanation lists. On any LLM failure (timeout,
// malformed response) it degrades to templated output built directly from
// the comparison.
func (g *Generator) Generate(
	ctx context.Context,
	cv *types.CVFacts,
	job *types.JobRequirements,
	comparison *types.ComparisonResult,
	assessments []types.TransferabilityAssessment,
	scores scoring.FinalScores,
) types.Explanation {
	if g.client == nil {
		return Fallback(comparison)
	}

	prompt, err := buildExplanationPrompt(cv, job, comparison, assessments, scores)
	if err != nil {
		return Fallback(comparison)
	}

	jsonResp, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return Fallback(comparison)
	}

	var response explanationResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(jsonResp)), &response); err != nil {
		return Fallback(comparison)
	}

	return types.Explanation{
		Strengths:       capList(response.Strengths),
		Gaps:            capList(response.Gaps),
		Recommendations: capList(response.Recommendations),
	}
}

// Fallback builds templated explanations from the comparison alone.
// Lists are empty, not filler text, when there is nothing to report, so a
// perfect match yields gaps == [].
func Fallback(comparison *types.ComparisonResult) types.Explanation {
	strengths := []string{}
	for _, verdict := range comparison.MatchedMustHave {
		strengths = append(strengths, fmt.Sprintf("Meets requirement: %s", verdict.Requirement))
	}

	gaps := []string{}
	for _, req := range missingRequirements(comparison) {
		gaps = append(gaps, fmt.Sprintf("Missing requirement: %s", req))
	}
	for _, verdict := range comparison.MissingNiceHave {
		gaps = append(gaps, fmt.Sprintf("Missing nice-to-have: %s", verdict.Requirement))
	}

	recommendations := []string{}
	for _, req := range missingRequirements(comparison) {
		recommendations = append(recommendations, fmt.Sprintf("Gain experience with: %s", req))
	}

	return types.Explanation{
		Strengths:       capList(strengths),
		Gaps:            capList(gaps),
		Recommendations: capList(recommendations),
	}
}

// missingRequirements collects every unmet must-have demand: generic skill
// requirements plus the specialized sub-results when not met.
func missingRequirements(comparison *types.ComparisonResult) []string {
	missing := []string{}
	for _, verdict := range comparison.MissingMustHave {
		missing = append(missing, verdict.Requirement)
	}
	if comparison.EducationMatch.Status == types.StatusNotMet {
		missing = append(missing, comparison.EducationMatch.Requirement)
	}
	if comparison.ExperienceMatch.Status == types.StatusNotMet {
		missing = append(missing, comparison.ExperienceMatch.Requirement)
	}
	if comparison.ManagementMatch.Status == types.StatusNotMet {
		missing = append(missing, comparison.ManagementMatch.Requirement)
	}
	return missing
}

func buildExplanationPrompt(
	cv *types.CVFacts,
	job *types.JobRequirements,
	comparison *types.ComparisonResult,
	assessments []types.TransferabilityAssessment,
	scores scoring.FinalScores,
) (string, error) {
	experience := cv.Experience
	if len(experience) > maxExperienceEntries {
		experience = experience[:maxExperienceEntries]
	}
	experienceJSON, err := json.MarshalIndent(experience, "", "  ")
	if err != nil {
		return "", err
	}

	skillsJSON, err := json.MarshalIndent(cv.Skills, "", "  ")
	if err != nil {
		return "", err
	}

	transferable := []types.TransferabilityAssessment{}
	for _, a := range assessments {
		if a.Score >= transferableThreshold {
			transferable = append(transferable, a)
		}
	}
	transferableJSON, err := json.MarshalIndent(transferable, "", "  ")
	if err != nil {
		return "", err
	}

	summary := cv.Summary
	if summary == "" {
		summary = "Not provided"
	}

	title := job.Title
	if title == "" {
		title = "Unknown"
	}

	template := prompts.MustGet("matching.json", "generate-explanation")
	return prompts.Format(template, map[string]string{
		"JobTitle":            title,
		"CVSummary":           summary,
		"CVYears":             strconv.Itoa(cv.YearsExperienceTotal),
		"CVExperience":        string(experienceJSON),
		"CVSkills":            string(skillsJSON),
		"MatchedMust":         joinRequirements(comparison.MatchedMustHave),
		"MissingMust":         strings.Join(missingRequirements(comparison), "; "),
		"MatchedNice":         joinRequirements(comparison.MatchedNiceHave),
		"MissingNice":         joinRequirements(comparison.MissingNiceHave),
		"Transferable":        string(transferableJSON),
		"OverallScore":        strconv.Itoa(scores.Overall),
		"SkillsScore":         strconv.Itoa(scores.Skills),
		"ExperienceScore":     strconv.Itoa(scores.Experience),
		"QualificationsScore": strconv.Itoa(scores.Qualifications),
	}), nil
}

func joinRequirements(verdicts []types.RequirementVerdict) string {
	reqs := make([]string, 0, len(verdicts))
	for _, v := range verdicts {
		reqs = append(reqs, v.Requirement)
	}
	if len(reqs) == 0 {
		return "None"
	}
	return strings.Join(reqs, "; ")
}

func capList(list []string) []string {
	if list == nil {
		return []string{}
	}
	if len(list) > maxEntries {
		return list[:maxEntries]
	}
	return list
}
