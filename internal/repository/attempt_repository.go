package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/AlzProject/backend/internal/model"
)

// AttemptRepository handles attempt data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Create inserts a new attempt in in_progress state.
func (r *AttemptRepository) Create(ctx context.Context, a *model.Attempt) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO attempts (test_id, user_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, started_at`,
		a.TestID, a.UserID, model.AttemptStatusInProgress,
	).Scan(&a.ID, &a.StartedAt)
}

// GetByID retrieves an attempt by its id.
func (r *AttemptRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, test_id, user_id, started_at, submitted_at, total_score, status
		 FROM attempts WHERE id = $1`, id,
	).Scan(&a.ID, &a.TestID, &a.UserID, &a.StartedAt, &a.SubmittedAt, &a.TotalScore, &a.Status)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return a, nil
}

// Exists reports whether an attempt with the given id exists.
func (r *AttemptRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM attempts WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

// SetSubmitted marks an attempt submitted and stamps the submit time.
// Re-submitting just overwrites submitted_at.
func (r *AttemptRepository) SetSubmitted(ctx context.Context, id uuid.UUID, submittedAt time.Time) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := r.pool.QueryRow(ctx,
		`UPDATE attempts
		 SET status = $2, submitted_at = $3
		 WHERE id = $1
		 RETURNING id, test_id, user_id, started_at, submitted_at, total_score, status`,
		id, model.AttemptStatusSubmitted, submittedAt,
	).Scan(&a.ID, &a.TestID, &a.UserID, &a.StartedAt, &a.SubmittedAt, &a.TotalScore, &a.Status)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return a, nil
}

// SetGraded finalizes an attempt after a completed grading pass.
func (r *AttemptRepository) SetGraded(ctx context.Context, id uuid.UUID, total decimal.Decimal) (*model.Attempt, error) {
	return r.setStatusAndTotal(ctx, id, model.AttemptStatusGraded, total)
}

// SetTotalScore records a pass total without changing the status.
func (r *AttemptRepository) SetTotalScore(ctx context.Context, id uuid.UUID, total decimal.Decimal) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := r.pool.QueryRow(ctx,
		`UPDATE attempts
		 SET total_score = $2
		 WHERE id = $1
		 RETURNING id, test_id, user_id, started_at, submitted_at, total_score, status`,
		id, total,
	).Scan(&a.ID, &a.TestID, &a.UserID, &a.StartedAt, &a.SubmittedAt, &a.TotalScore, &a.Status)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return a, nil
}

func (r *AttemptRepository) setStatusAndTotal(ctx context.Context, id uuid.UUID, status model.AttemptStatus, total decimal.Decimal) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := r.pool.QueryRow(ctx,
		`UPDATE attempts
		 SET status = $2, total_score = $3
		 WHERE id = $1
		 RETURNING id, test_id, user_id, started_at, submitted_at, total_score, status`,
		id, status, total,
	).Scan(&a.ID, &a.TestID, &a.UserID, &a.StartedAt, &a.SubmittedAt, &a.TotalScore, &a.Status)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return a, nil
}

// List retrieves attempts, optionally filtered by user, newest first.
func (r *AttemptRepository) List(ctx context.Context, userID *uuid.UUID, limit, offset int) ([]model.Attempt, int64, error) {
	where := ""
	args := []any{}
	if userID != nil {
		where = "WHERE user_id = $1"
		args = append(args, *userID)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM attempts "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT id, test_id, user_id, started_at, submitted_at, total_score, status
		 FROM attempts %s
		 ORDER BY started_at DESC
		 LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(&a.ID, &a.TestID, &a.UserID, &a.StartedAt, &a.SubmittedAt, &a.TotalScore, &a.Status); err != nil {
			return nil, 0, err
		}
		attempts = append(attempts, a)
	}
	return attempts, total, rows.Err()
}
