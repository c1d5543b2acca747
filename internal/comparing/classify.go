// Package comparing implements the deterministic requirement comparison
// between normalized CV facts and job requirements. No external calls are
// made here; identical inputs always produce identical results.
package comparing

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-match/internal/skills"
	"github.com/jonathan/cv-match/internal/types"
)

// qualificationKeywords flag degree and certification requirements
var qualificationKeywords = []string{"degree", "bachelor", "master", "phd", "doctorate", "certified"}

// managementKeywords flag people-management requirements
var managementKeywords = []string{"management", "lead"}

// experienceContextWords accompany "years" in generic experience requirements
// ("7+ years backend engineering") as opposed to technology-specific ones
// ("3+ years python"), which stay skill requirements.
var experienceContextWords = []string{"experience", "backend", "engineering"}

// yearsPattern extracts the digit prefix from phrasings like "7+ years" or "3 years"
var yearsPattern = regexp.MustCompile(`(\d+)\+?\s*years?`)

// ClassifyRequirement resolves a requirement string to its type using keyword
// heuristics. When a string matches several categories, the fixed priority
// order decides: qualification > named technology > generic experience >
// default skill. The order is load-bearing: changing it changes scores.
func ClassifyRequirement(requirement string) types.RequirementType {
	lower := strings.ToLower(requirement)

	for _, kw := range qualificationKeywords {
		if strings.Contains(lower, kw) {
			return types.RequirementQualification
		}
	}

	for _, kw := range managementKeywords {
		if strings.Contains(lower, kw) {
			return types.RequirementManagement
		}
	}

	if skills.KnownTechnology(lower) {
		return types.RequirementSkill
	}

	if yearsPattern.MatchString(lower) && containsAny(lower, experienceContextWords) {
		return types.RequirementExperience
	}

	return types.RequirementSkill
}

// requiredYears extracts the largest "N years" figure across the given
// requirement strings. Returns 0 when no requirement mentions years.
func requiredYears(requirements []string) int {
	max := 0
	for _, req := range requirements {
		for _, m := range yearsPattern.FindAllStringSubmatch(strings.ToLower(req), -1) {
			years := 0
			for _, c := range m[1] {
				years = years*10 + int(c-'0')
			}
			if years > max {
				max = years
			}
		}
	}
	return max
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
