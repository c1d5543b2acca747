package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-match/internal/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	matcher := pipeline.NewMatcher(pipeline.NewRulesStrategy(), nil)
	srv, err := New(Config{Port: 0}, matcher)
	require.NoError(t, err)
	return srv
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleMatch(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"cv_facts": {
			"skills": ["python", "docker"],
			"years_experience_total": 6
		},
		"job_requirements": {
			"must_have": ["python", "kubernetes"],
			"nice_to_have": []
		}
	}`

	rec := doRequest(srv, http.MethodPost, "/match", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp matchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.False(t, resp.Cached)
	assert.True(t, resp.Result.ScoresInRange())
	assert.Contains(t, resp.Result.MatchedSkills, "python")
	assert.Contains(t, resp.Result.MissingSkills, "kubernetes")
}

func TestHandleMatch_InvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/match", "{broken")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON body")
}

func TestHandleMatch_MissingRequiredFields(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/match", `{"cv_facts": null}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMatch_BadUUID(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"cv_id": "not-a-uuid",
		"job_id": "also-not",
		"cv_facts": {"skills": []},
		"job_requirements": {"must_have": [], "nice_to_have": []}
	}`

	rec := doRequest(srv, http.MethodPost, "/match", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetMatch_PersistenceDisabled(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet,
		"/match/11111111-1111-4111-8111-111111111111/22222222-2222-4222-8222-222222222222", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "persistence is not configured")
}

func TestHandleDeleteMatch_PersistenceDisabled(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodDelete,
		"/match/11111111-1111-4111-8111-111111111111/22222222-2222-4222-8222-222222222222", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrMatchNotFound{}))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(&ErrPersistenceDisabled{}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(assert.AnError))
}
