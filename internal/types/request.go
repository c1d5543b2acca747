package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MatchRequest represents the request to compute a CV-to-job match.
// CVID and JobID are optional; when both are present the result is
// persisted and subsequent requests may be served from the cache.
type MatchRequest struct {
	CVID  string `json:"cv_id,omitempty" validate:"omitempty,uuid4"`
	JobID string `json:"job_id,omitempty" validate:"omitempty,uuid4"`

	CVFacts *CVFacts         `json:"cv_facts" validate:"required"`
	Job     *JobRequirements `json:"job_requirements" validate:"required"`

	// Force recomputes even when a fresh cached result exists
	Force bool `json:"force,omitempty"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Keyed reports whether the request carries both identifiers needed for caching
func (r *MatchRequest) Keyed() bool {
	return r.CVID != "" && r.JobID != ""
}

// CVUUID parses the CV identifier. Call only after Validate.
func (r *MatchRequest) CVUUID() (uuid.UUID, error) {
	return uuid.Parse(r.CVID)
}

// JobUUID parses the job identifier. Call only after Validate.
func (r *MatchRequest) JobUUID() (uuid.UUID, error) {
	return uuid.Parse(r.JobID)
}
