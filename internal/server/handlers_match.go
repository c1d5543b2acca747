package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-match/internal/pipeline"
	"github.com/jonathan/cv-match/internal/types"
)

// matchResponse wraps a match result with cache provenance
type matchResponse struct {
	Result *types.MatchResult `json:"result"`
	Cached bool               `json:"cached"`
}

// handleMatch computes (or serves from cache) the match for a CV/job pair.
// Requests carrying both cv_id and job_id are persisted; anonymous
// requests are computed and returned without persistence.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid match request: "+err.Error())
		return
	}

	inputsHash, err := pipeline.InputsHash(req.CVFacts, req.Job)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to hash inputs")
		return
	}

	if s.db != nil && req.Keyed() && !req.Force {
		cvID, _ := req.CVUUID()
		jobID, _ := req.JobUUID()
		stored, err := s.db.GetFreshMatch(r.Context(), cvID, jobID, inputsHash)
		if err != nil {
			log.Printf("cache lookup failed, recomputing: %v", err)
		} else if stored != nil {
			s.jsonResponse(w, http.StatusOK, matchResponse{Result: stored.Result, Cached: true})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result, err := s.matcher.Match(ctx, &req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "match computation failed: "+err.Error())
		return
	}

	if s.db != nil && req.Keyed() {
		cvID, _ := req.CVUUID()
		jobID, _ := req.JobUUID()
		// Persist on a fresh context so a client disconnect does not
		// lose the computed result.
		saveCtx, saveCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer saveCancel()
		if err := s.db.SaveMatch(saveCtx, cvID, jobID, inputsHash, result); err != nil {
			log.Printf("failed to persist match result: %v", err)
		}
	}

	s.jsonResponse(w, http.StatusOK, matchResponse{Result: result, Cached: false})
}

// handleGetMatch returns the stored match result for a pair
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrPersistenceDisabled{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	cvID, jobID, ok := s.pairFromPath(w, r)
	if !ok {
		return
	}

	stored, err := s.db.GetMatch(r.Context(), cvID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load match result")
		return
	}
	if stored == nil {
		notFound := &ErrMatchNotFound{CVID: cvID, JobID: jobID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, matchResponse{Result: stored.Result, Cached: true})
}

// handleDeleteMatch removes the stored match result for a pair
func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrPersistenceDisabled{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	cvID, jobID, ok := s.pairFromPath(w, r)
	if !ok {
		return
	}

	deleted, err := s.db.DeleteMatch(r.Context(), cvID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete match result")
		return
	}
	if !deleted {
		notFound := &ErrMatchNotFound{CVID: cvID, JobID: jobID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pairFromPath parses the {cv_id}/{job_id} path segments. Writes the
// error response itself when parsing fails.
func (s *Server) pairFromPath(w http.ResponseWriter, r *http.Request) (cvID, jobID uuid.UUID, ok bool) {
	cvID, err := uuid.Parse(r.PathValue("cv_id"))
	if err != nil {
		v := &ErrValidation{Field: "cv_id", Message: "must be a valid UUID"}
		s.errorResponse(w, HTTPStatus(v), v.Error())
		return uuid.Nil, uuid.Nil, false
	}
	jobID, err = uuid.Parse(r.PathValue("job_id"))
	if err != nil {
		v := &ErrValidation{Field: "job_id", Message: "must be a valid UUID"}
		s.errorResponse(w, HTTPStatus(v), v.Error())
		return uuid.Nil, uuid.Nil, false
	}
	return cvID, jobID, true
}
