package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrMatchNotFound indicates no stored match exists for the pair
type ErrMatchNotFound struct {
	CVID  uuid.UUID
	JobID uuid.UUID
}

func (e *ErrMatchNotFound) Error() string {
	return fmt.Sprintf("no match result for cv %s and job %s", e.CVID, e.JobID)
}

// ErrPersistenceDisabled indicates the server runs without a database
type ErrPersistenceDisabled struct{}

func (e *ErrPersistenceDisabled) Error() string {
	return "persistence is not configured on this server"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrMatchNotFound:
		return http.StatusNotFound
	case *ErrPersistenceDisabled:
		return http.StatusServiceUnavailable
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
