package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/cv-match/internal/llm"
	"github.com/jonathan/cv-match/internal/prompts"
	"github.com/jonathan/cv-match/internal/types"
)

// maxSkillsInPrompt bounds the skill list sent per rating request
const maxSkillsInPrompt = 20

// GeminiRater rates transferability through the LLM client using the fixed
// rubric prompt. The rubric's special rules (senior bonus, domain penalty)
// live in the prompt; the caller clamps the returned score to [0, 1].
type GeminiRater struct {
	client llm.Client
}

// NewGeminiRater creates a rater backed by the given LLM client
func NewGeminiRater(client llm.Client) *GeminiRater {
	return &GeminiRater{client: client}
}

// ratingResponse is the expected JSON shape from the rating prompt
type ratingResponse struct {
	Requirement string  `json:"requirement"`
	Score       float64 `json:"transferability_score"`
	Reasoning   string  `json:"reasoning"`
	RampUpTime  string  `json:"ramp_up_time"`
}

// Rate issues one bounded-scope rating request for a missing requirement
func (r *GeminiRater) Rate(ctx context.Context, input RatingInput) (*types.TransferabilityAssessment, error) {
	prompt := buildRatingPrompt(input)

	jsonResp, err := r.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("rating request failed: %w", err)
	}

	jsonResp = llm.CleanJSONBlock(jsonResp)

	var response ratingResponse
	if err := json.Unmarshal([]byte(jsonResp), &response); err != nil {
		return nil, fmt.Errorf("malformed rating response: %w (content: %s)", err, jsonResp)
	}

	return &types.TransferabilityAssessment{
		Requirement: input.Requirement,
		Score:       response.Score,
		Reasoning:   response.Reasoning,
		RampUpTime:  response.RampUpTime,
	}, nil
}

// buildRatingPrompt fills the rubric template with candidate context.
// The skill list is truncated so a sprawling CV cannot blow up the prompt.
func buildRatingPrompt(input RatingInput) string {
	skillsStr := strings.Join(truncateList(input.CVSkills, maxSkillsInPrompt), ", ")
	if len(input.CVSkills) > maxSkillsInPrompt {
		skillsStr += fmt.Sprintf(" (and %d more)", len(input.CVSkills)-maxSkillsInPrompt)
	}

	domainStr := "Not specified"
	if len(input.CVDomain) > 0 {
		domainStr = strings.Join(input.CVDomain, ", ")
	}

	jobDomain := input.JobDomain
	if jobDomain == "" {
		jobDomain = "Not specified"
	}

	template := prompts.MustGet("matching.json", "rate-transferability")
	return prompts.Format(template, map[string]string{
		"CVSkills":    skillsStr,
		"CVYears":     strconv.Itoa(input.CVYears),
		"CVDomain":    domainStr,
		"Requirement": input.Requirement,
		"JobDomain":   jobDomain,
	})
}

func truncateList(list []string, max int) []string {
	if len(list) <= max {
		return list
	}
	return list[:max]
}
