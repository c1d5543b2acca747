package comparing

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-match/internal/skills"
	"github.com/jonathan/cv-match/internal/types"
)

// Compare evaluates every job requirement against the normalized CV facts
// and returns the aggregate comparison. Both inputs are expected to be
// normalized already (see skills.NormalizeCVFacts / NormalizeJobRequirements);
// they are not modified.
func Compare(cv *types.CVFacts, job *types.JobRequirements) *types.ComparisonResult {
	cvTech := skills.AllCVTech(cv)

	matchedMust, missingMust := matchRequirements(job.MustHave, cvTech)
	matchedNice, missingNice := matchRequirements(job.NiceToHave, cvTech)

	return &types.ComparisonResult{
		MatchedMustHave: matchedMust,
		MissingMustHave: missingMust,
		MatchedNiceHave: matchedNice,
		MissingNiceHave: missingNice,
		ExperienceMatch: compareExperience(cv, job),
		EducationMatch:  compareEducation(cv, job),
		ManagementMatch: compareManagement(cv, job),
	}
}

// matchRequirements tests each generic skill requirement for containment of
// a CV technology token inside the requirement string (or vice versa).
// Qualification, experience and management requirements are claimed by the
// specialized sub-matches and never appear in the returned lists.
func matchRequirements(requirements []string, cvTech map[string]bool) (matched, missing []types.RequirementVerdict) {
	matched = []types.RequirementVerdict{}
	missing = []types.RequirementVerdict{}

	for _, req := range requirements {
		kind := ClassifyRequirement(req)
		if kind != types.RequirementSkill {
			continue
		}

		reqLower := strings.ToLower(req)
		if tech, found := findTech(reqLower, cvTech); found {
			matched = append(matched, types.RequirementVerdict{
				Requirement: req,
				Status:      types.StatusMet,
				Evidence:    fmt.Sprintf("CV lists: %s", tech),
				Type:        types.RequirementSkill,
			})
			continue
		}

		missing = append(missing, types.RequirementVerdict{
			Requirement: req,
			Status:      types.StatusNotMet,
			Evidence:    "Not in CV",
			Type:        types.RequirementSkill,
		})
	}

	return matched, missing
}

// findTech looks for a CV technology contained in the requirement string or
// the requirement contained in a technology name. Iteration over the tech
// set must not influence which hit is reported, so ties resolve to the
// lexicographically smallest technology.
func findTech(reqLower string, cvTech map[string]bool) (string, bool) {
	best := ""
	for tech := range cvTech {
		if tech == "" {
			continue
		}
		if strings.Contains(reqLower, tech) || strings.Contains(tech, reqLower) {
			if best == "" || tech < best {
				best = tech
			}
		}
	}
	return best, best != ""
}

// compareExperience compares total years of experience against the largest
// "N years" figure found anywhere in the must-have list. A job with no
// years requirement is trivially met.
func compareExperience(cv *types.CVFacts, job *types.JobRequirements) types.ExperienceMatch {
	cvYears := cv.YearsExperienceTotal
	jobYears := requiredYears(job.MustHave)

	if jobYears == 0 {
		return types.ExperienceMatch{
			Requirement:   "No experience requirement",
			Status:        types.StatusMet,
			Evidence:      "N/A",
			CVYears:       cvYears,
			RequiredYears: 0,
		}
	}

	status := types.StatusNotMet
	if cvYears >= jobYears {
		status = types.StatusMet
	}

	return types.ExperienceMatch{
		Requirement:   fmt.Sprintf("%d+ years experience", jobYears),
		Status:        status,
		Evidence:      fmt.Sprintf("CV: %d years, Required: %d years", cvYears, jobYears),
		CVYears:       cvYears,
		RequiredYears: jobYears,
	}
}

// compareManagement checks seniority signals for leadership evidence when
// the job requires management. Absence of the requirement is met by default.
func compareManagement(cv *types.CVFacts, job *types.JobRequirements) types.ManagementMatch {
	if !job.ManagementRequired() {
		return types.ManagementMatch{
			Requirement: "No management required",
			Status:      types.StatusMet,
			Evidence:    "N/A",
		}
	}

	leadershipKeywords := []string{"lead", "manage", "mentor", "supervise", "direct", "team of"}

	var teamSizeMention string
	hasManagement := false
	for _, signal := range cv.SenioritySignals {
		lower := strings.ToLower(signal)
		if containsAny(lower, leadershipKeywords) {
			hasManagement = true
			if teamSizeMention == "" && strings.Contains(lower, "team of") {
				teamSizeMention = signal
			}
		}
	}

	requirement := "Management experience"
	if job.Management.TeamSize > 0 {
		requirement = fmt.Sprintf("Management experience (team of %d)", job.Management.TeamSize)
	}

	if !hasManagement {
		return types.ManagementMatch{
			Requirement: requirement,
			Status:      types.StatusNotMet,
			Evidence:    "No management or leadership signals found",
		}
	}

	evidence := "Has leadership/management experience"
	if teamSizeMention != "" {
		evidence = fmt.Sprintf("Has management experience: %s", teamSizeMention)
	}

	return types.ManagementMatch{
		Requirement: requirement,
		Status:      types.StatusMet,
		Evidence:    evidence,
	}
}
