package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/AlzProject/backend/internal/model"
)

// ResponseRepository handles response data access. A UNIQUE constraint
// on (attempt_id, question_id) plus upsert keeps exactly one row per
// key under concurrent submission; the last commit wins.
type ResponseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository creates a new ResponseRepository.
func NewResponseRepository(pool *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{pool: pool}
}

// Upsert atomically creates or replaces the response for
// (attempt_id, question_id). A fresh row starts with evaluated = false;
// an overwrite replaces the answer payload and leaves evaluated as-is.
// The score column is only written when the caller supplied one.
func (r *ResponseRepository) Upsert(ctx context.Context, resp *model.Response, score *decimal.Decimal) error {
	setScore := ""
	if score != nil {
		setScore = ", score = EXCLUDED.score"
	}

	query := fmt.Sprintf(
		`INSERT INTO responses (attempt_id, question_id, selected_option_ids, answer_text, score)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (attempt_id, question_id) DO UPDATE
		 SET selected_option_ids = EXCLUDED.selected_option_ids,
		     answer_text = EXCLUDED.answer_text%s
		 RETURNING id, score, evaluated`, setScore)

	var scoreArg decimal.NullDecimal
	if score != nil {
		scoreArg = decimal.NullDecimal{Decimal: *score, Valid: true}
	}

	return r.pool.QueryRow(ctx, query,
		resp.AttemptID, resp.QuestionID, resp.SelectedOptionIDs, resp.AnswerText, scoreArg,
	).Scan(&resp.ID, &resp.Score, &resp.Evaluated)
}

// GetByID retrieves a response by its id.
func (r *ResponseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Response, error) {
	resp := &model.Response{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, attempt_id, question_id, selected_option_ids, answer_text, score, evaluated
		 FROM responses WHERE id = $1`, id,
	).Scan(&resp.ID, &resp.AttemptID, &resp.QuestionID, &resp.SelectedOptionIDs, &resp.AnswerText, &resp.Score, &resp.Evaluated)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return resp, nil
}

// SetGrade records a settled score and marks the response evaluated.
func (r *ResponseRepository) SetGrade(ctx context.Context, id uuid.UUID, score decimal.Decimal) (*model.Response, error) {
	resp := &model.Response{}
	err := r.pool.QueryRow(ctx,
		`UPDATE responses
		 SET score = $2, evaluated = TRUE
		 WHERE id = $1
		 RETURNING id, attempt_id, question_id, selected_option_ids, answer_text, score, evaluated`,
		id, score,
	).Scan(&resp.ID, &resp.AttemptID, &resp.QuestionID, &resp.SelectedOptionIDs, &resp.AnswerText, &resp.Score, &resp.Evaluated)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return resp, nil
}

// ListByAttempt retrieves every response belonging to an attempt.
func (r *ResponseRepository) ListByAttempt(ctx context.Context, attemptID uuid.UUID) ([]model.Response, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, attempt_id, question_id, selected_option_ids, answer_text, score, evaluated
		 FROM responses WHERE attempt_id = $1`, attemptID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResponses(rows)
}

// List retrieves responses with optional attempt/question filters.
func (r *ResponseRepository) List(ctx context.Context, attemptID, questionID *uuid.UUID, limit, offset int) ([]model.Response, int64, error) {
	where := ""
	args := []any{}
	if attemptID != nil {
		args = append(args, *attemptID)
		where = fmt.Sprintf("WHERE attempt_id = $%d", len(args))
	}
	if questionID != nil {
		args = append(args, *questionID)
		if where == "" {
			where = fmt.Sprintf("WHERE question_id = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND question_id = $%d", len(args))
		}
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM responses "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT id, attempt_id, question_id, selected_option_ids, answer_text, score, evaluated
		 FROM responses %s
		 ORDER BY id
		 LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	responses, err := scanResponses(rows)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// CountUnevaluated returns how many responses of an attempt still await
// a score. Zero means the grading pass may close the attempt.
func (r *ResponseRepository) CountUnevaluated(ctx context.Context, attemptID uuid.UUID) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM responses WHERE attempt_id = $1 AND evaluated = FALSE`, attemptID,
	).Scan(&n)
	return n, err
}

type responseRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanResponses(rows responseRows) ([]model.Response, error) {
	var responses []model.Response
	for rows.Next() {
		var resp model.Response
		if err := rows.Scan(&resp.ID, &resp.AttemptID, &resp.QuestionID, &resp.SelectedOptionIDs, &resp.AnswerText, &resp.Score, &resp.Evaluated); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
