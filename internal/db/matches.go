package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/cv-match/internal/types"
)

// matchTTL is how long a persisted match result stays servable before a
// recompute is forced
const matchTTL = 7 * 24 * time.Hour

// StoredMatch is a persisted match result row
type StoredMatch struct {
	CVID       uuid.UUID
	JobID      uuid.UUID
	InputsHash string
	Result     *types.MatchResult
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// SaveMatch upserts the match result for a (cv, job) pair, stamping a
// fresh expiry. The inputs hash invalidates the row when either input
// changes.
func (db *DB) SaveMatch(ctx context.Context, cvID, jobID uuid.UUID, inputsHash string, result *types.MatchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal match result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO match_results (cv_id, job_id, inputs_hash, result, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, NOW(), NOW() + make_interval(secs => $5))
		 ON CONFLICT (cv_id, job_id) DO UPDATE
		 SET inputs_hash = $3, result = $4, created_at = NOW(), expires_at = NOW() + make_interval(secs => $5)`,
		cvID, jobID, inputsHash, resultJSON, matchTTL.Seconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to save match result: %w", err)
	}
	return nil
}

// GetFreshMatch returns the stored result for the pair if it has not
// expired and was computed from the same inputs. Returns nil when no
// servable row exists.
func (db *DB) GetFreshMatch(ctx context.Context, cvID, jobID uuid.UUID, inputsHash string) (*StoredMatch, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT inputs_hash, result, created_at, expires_at
		 FROM match_results
		 WHERE cv_id = $1 AND job_id = $2 AND expires_at > NOW() AND inputs_hash = $3`,
		cvID, jobID, inputsHash,
	)

	stored := StoredMatch{CVID: cvID, JobID: jobID}
	var resultJSON []byte
	err := row.Scan(&stored.InputsHash, &resultJSON, &stored.CreatedAt, &stored.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match result: %w", err)
	}

	var result types.MatchResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored match result: %w", err)
	}
	stored.Result = &result

	return &stored, nil
}

// GetMatch returns the stored result for the pair regardless of expiry.
// Returns nil when no row exists.
func (db *DB) GetMatch(ctx context.Context, cvID, jobID uuid.UUID) (*StoredMatch, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT inputs_hash, result, created_at, expires_at
		 FROM match_results
		 WHERE cv_id = $1 AND job_id = $2`,
		cvID, jobID,
	)

	stored := StoredMatch{CVID: cvID, JobID: jobID}
	var resultJSON []byte
	err := row.Scan(&stored.InputsHash, &resultJSON, &stored.CreatedAt, &stored.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match result: %w", err)
	}

	var result types.MatchResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored match result: %w", err)
	}
	stored.Result = &result

	return &stored, nil
}

// DeleteMatch removes the stored result for the pair. Reports whether a
// row was deleted.
func (db *DB) DeleteMatch(ctx context.Context, cvID, jobID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM match_results WHERE cv_id = $1 AND job_id = $2`,
		cvID, jobID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete match result: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// PurgeExpired removes all expired match results and returns how many
// rows were dropped
func (db *DB) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM match_results WHERE expires_at <= NOW()`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired match results: %w", err)
	}
	return tag.RowsAffected(), nil
}
