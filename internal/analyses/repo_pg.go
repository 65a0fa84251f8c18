package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, tool, user_id, input_hash, input_preview, engine_version, result, duration_ms, cached, created_at`

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analysis_runs (` + selectColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	payload, err := marshalJSONB(analysis.Result)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		string(analysis.Tool),
		analysis.UserID,
		analysis.InputHash,
		analysis.InputPreview,
		analysis.EngineVersion,
		payload,
		analysis.DurationMs,
		analysis.Cached,
		analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis %s: %w", analysis.ID, err)
	}
	return nil
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	const query = `
SELECT ` + selectColumns + `
FROM analysis_runs
WHERE id = $1
LIMIT 1`
	a, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return a, nil
}

// ListByUser lists analyses for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT ` + selectColumns + `
FROM analysis_runs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var tool string
	var result []byte
	if err := row.Scan(
		&a.ID,
		&tool,
		&a.UserID,
		&a.InputHash,
		&a.InputPreview,
		&a.EngineVersion,
		&result,
		&a.DurationMs,
		&a.Cached,
		&a.CreatedAt,
	); err != nil {
		return Analysis{}, err
	}
	a.Tool = Tool(tool)
	if json.Valid(result) {
		a.Result = json.RawMessage(result)
	}
	return a, nil
}

func marshalJSONB(value json.RawMessage) ([]byte, error) {
	if len(value) == 0 {
		return []byte("{}"), nil
	}
	if !json.Valid(value) {
		return nil, fmt.Errorf("%w: result is not valid JSON", ErrInvalidInput)
	}
	return []byte(value), nil
}
