package types

// MatchStatus is the verdict for a single requirement
type MatchStatus string

// Verdict statuses for requirement comparison
const (
	StatusMet          MatchStatus = "MET"
	StatusPartiallyMet MatchStatus = "PARTIALLY_MET"
	StatusNotMet       MatchStatus = "NOT_MET"
)

// RequirementType classifies what kind of requirement a string expresses
type RequirementType string

// Requirement classifications, resolved in priority order:
// qualification > named technology (skill) > experience years > default skill
const (
	RequirementSkill         RequirementType = "skill"
	RequirementExperience    RequirementType = "experience"
	RequirementQualification RequirementType = "qualification"
	RequirementManagement    RequirementType = "management"
)

// RequirementVerdict is the comparison outcome for one requirement string.
// Evidence always cites a fact from CVFacts (a listed skill, company name,
// or year span), never an inferred one.
type RequirementVerdict struct {
	Requirement string          `json:"requirement"`
	Status      MatchStatus     `json:"status"`
	Evidence    string          `json:"evidence"`
	Type        RequirementType `json:"requirement_type"`
}

// ExperienceMatch is the specialized sub-result for years-of-experience requirements
type ExperienceMatch struct {
	Requirement   string      `json:"requirement"`
	Status        MatchStatus `json:"status"`
	Evidence      string      `json:"evidence"`
	CVYears       int         `json:"cv_years"`
	RequiredYears int         `json:"required_years"`
}

// EducationMatch is the specialized sub-result for degree requirements.
// Work experience never satisfies a strict degree requirement; equivalent
// educational credentials count only when the requirement text explicitly
// allows "or equivalent".
type EducationMatch struct {
	Requirement            string      `json:"requirement"`
	Status                 MatchStatus `json:"status"`
	Evidence               string      `json:"evidence"`
	HasFormalDegree        bool        `json:"has_formal_degree"`
	HasEquivalentEducation bool        `json:"has_equivalent_education"`
	OrEquivalentAllowed    bool        `json:"or_equivalent_allowed"`
}

// ManagementMatch is the specialized sub-result for management requirements
type ManagementMatch struct {
	Requirement string      `json:"requirement"`
	Status      MatchStatus `json:"status"`
	Evidence    string      `json:"evidence"`
}

// ComparisonResult aggregates all requirement verdicts for one CV/job pair.
// Every must-have requirement appears in exactly one of MatchedMustHave or
// MissingMustHave; education, experience and management requirements are
// excluded from the generic skill lists so nothing is double-counted.
type ComparisonResult struct {
	MatchedMustHave []RequirementVerdict `json:"matched_must_have"`
	MissingMustHave []RequirementVerdict `json:"missing_must_have"`
	MatchedNiceHave []RequirementVerdict `json:"matched_nice_have"`
	MissingNiceHave []RequirementVerdict `json:"missing_nice_have"`

	ExperienceMatch ExperienceMatch `json:"experience_match"`
	EducationMatch  EducationMatch  `json:"education_match"`
	ManagementMatch ManagementMatch `json:"management_match"`
}

// TotalMustHave returns the number of generic must-have requirements considered
func (c *ComparisonResult) TotalMustHave() int {
	return len(c.MatchedMustHave) + len(c.MissingMustHave)
}

// TotalNiceToHave returns the number of generic nice-to-have requirements considered
func (c *ComparisonResult) TotalNiceToHave() int {
	return len(c.MatchedNiceHave) + len(c.MissingNiceHave)
}
