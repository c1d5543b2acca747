package comparing

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-match/internal/types"
)

// formalDegreeKeywords identify bachelor's degrees and above
var formalDegreeKeywords = []string{
	"bachelor", "b.sc", "b.s.", "bsc", "ba ", "b.a.", "b.tech",
	"master", "m.sc", "m.s.", "msc", "ma ", "m.a.",
	"phd", "ph.d.", "doctorate",
}

// equivalentEducationKeywords identify equivalent educational credentials.
// These satisfy a degree requirement only when the requirement text
// explicitly allows "or equivalent"; they are educational qualifications,
// not a substitute built from work experience.
var equivalentEducationKeywords = []string{
	"associate", "a.s.", "a.a.",
	"diploma", "certificate",
	"bootcamp", "coding bootcamp",
	"professional certificate",
	"technical degree",
}

// compareEducation evaluates the first degree requirement found in the
// must-have list. Work experience never satisfies a strict degree
// requirement; "or equivalent" admits equivalent educational credentials
// only. A job with no degree requirement is trivially met.
func compareEducation(cv *types.CVFacts, job *types.JobRequirements) types.EducationMatch {
	requirementText, orEquivalent, found := findDegreeRequirement(job.MustHave)
	if !found {
		return types.EducationMatch{
			Requirement: "No degree required",
			Status:      types.StatusMet,
			Evidence:    "N/A",
		}
	}

	hasDegree := hasFormalDegree(cv.Education)
	hasEquivalent := hasEquivalentEducation(cv.Education)

	match := types.EducationMatch{
		Requirement:            requirementText,
		HasFormalDegree:        hasDegree,
		HasEquivalentEducation: hasEquivalent,
		OrEquivalentAllowed:    orEquivalent,
	}

	switch {
	case hasDegree:
		match.Status = types.StatusMet
		match.Evidence = "Has formal degree (Bachelor's or higher)"
	case hasEquivalent && orEquivalent:
		match.Status = types.StatusMet
		match.Evidence = "Has equivalent educational qualification (e.g., Associates, technical degree, bootcamp)"
	case orEquivalent:
		match.Status = types.StatusNotMet
		match.Evidence = "No formal degree or equivalent educational qualification"
	default:
		match.Status = types.StatusNotMet
		match.Evidence = "No formal degree (strict degree requirement, no equivalents allowed)"
	}

	return match
}

// findDegreeRequirement returns the first must-have requirement that asks
// for a degree, and whether it carries an "or equivalent" clause.
func findDegreeRequirement(mustHave []string) (text string, orEquivalent bool, found bool) {
	degreeWords := []string{"degree", "bachelor", "master", "phd", "doctorate"}

	for _, req := range mustHave {
		lower := strings.ToLower(req)
		if !containsAny(lower, degreeWords) {
			continue
		}
		return req, strings.Contains(lower, "or equivalent"), true
	}
	return "", false, false
}

func hasFormalDegree(education []types.Education) bool {
	for _, edu := range education {
		degree := strings.ToLower(edu.Degree)
		if containsAny(degree, formalDegreeKeywords) {
			return true
		}
	}
	return false
}

func hasEquivalentEducation(education []types.Education) bool {
	for _, edu := range education {
		combined := strings.ToLower(fmt.Sprintf("%s %s %s", edu.Degree, edu.Institution, edu.Field))
		if containsAny(combined, equivalentEducationKeywords) {
			return true
		}
	}
	return false
}
