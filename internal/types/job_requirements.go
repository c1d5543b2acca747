package types

// JobRequirements represents the requirement tiers extracted from a job
// posting. Requirement strings are free text ("3+ years Python",
// "Bachelor's degree or equivalent"). Immutable input to the pipeline.
type JobRequirements struct {
	Title      string   `json:"title,omitempty"`
	RoleLevel  string   `json:"role_level,omitempty"`
	Domain     string   `json:"domain,omitempty"`
	MustHave   []string `json:"must_have"`
	NiceToHave []string `json:"nice_to_have"`

	Management *ManagementRequirement `json:"management,omitempty"`
}

// ManagementRequirement captures whether the role requires people management
type ManagementRequirement struct {
	Required bool `json:"required"`
	TeamSize int  `json:"team_size,omitempty"`
}

// ManagementRequired reports whether the job explicitly requires management
// experience. A nil Management block means no requirement.
func (j *JobRequirements) ManagementRequired() bool {
	return j.Management != nil && j.Management.Required
}
