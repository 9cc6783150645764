package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlzProject/backend/internal/model"
)

// QuestionWithOptions bundles a question with its configured options,
// as the grading pass consumes them.
type QuestionWithOptions struct {
	Question model.Question
	Options  []model.Option
}

// QuestionRepository handles question and option data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// GetByID retrieves a question by its id.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, section_id, question_text, question_type, ans, max_score, negative_score, partial_marking, order_num
		 FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.SectionID, &q.QuestionText, &q.QuestionType, &q.Ans, &q.MaxScore, &q.NegativeScore, &q.PartialMarking, &q.OrderNum)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return q, nil
}

// Exists reports whether a question with the given id exists.
func (r *QuestionRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM questions WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (section_id, question_text, question_type, ans, max_score, negative_score, partial_marking, order_num)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		q.SectionID, q.QuestionText, q.QuestionType, q.Ans, q.MaxScore, q.NegativeScore, q.PartialMarking, q.OrderNum,
	).Scan(&q.ID)
}

// Delete removes a question and its options.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBySection retrieves all questions of a section, ordered.
func (r *QuestionRepository) ListBySection(ctx context.Context, sectionID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, section_id, question_text, question_type, ans, max_score, negative_score, partial_marking, order_num
		 FROM questions WHERE section_id = $1
		 ORDER BY order_num`, sectionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// GetManyWithOptions loads the given questions and their options in two
// queries. Questions missing from the result were not found; callers
// decide whether that matters.
func (r *QuestionRepository) GetManyWithOptions(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*QuestionWithOptions, error) {
	out := make(map[uuid.UUID]*QuestionWithOptions, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, section_id, question_text, question_type, ans, max_score, negative_score, partial_marking, order_num
		 FROM questions WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, err
	}
	questions, err := scanQuestions(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	for i := range questions {
		out[questions[i].ID] = &QuestionWithOptions{Question: questions[i]}
	}

	optRows, err := r.pool.Query(ctx,
		`SELECT id, question_id, option_text, is_correct, weight, order_num
		 FROM question_options WHERE question_id = ANY($1)
		 ORDER BY order_num`, ids,
	)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var o model.Option
		if err := optRows.Scan(&o.ID, &o.QuestionID, &o.OptionText, &o.IsCorrect, &o.Weight, &o.OrderNum); err != nil {
			return nil, err
		}
		if qw, ok := out[o.QuestionID]; ok {
			qw.Options = append(qw.Options, o)
		}
	}
	return out, optRows.Err()
}

// CreateOption inserts a new option for a question.
func (r *QuestionRepository) CreateOption(ctx context.Context, o *model.Option) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO question_options (question_id, option_text, is_correct, weight, order_num)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		o.QuestionID, o.OptionText, o.IsCorrect, o.Weight, o.OrderNum,
	).Scan(&o.ID)
}

// ListOptionsByQuestion retrieves all options of a question, ordered.
func (r *QuestionRepository) ListOptionsByQuestion(ctx context.Context, questionID uuid.UUID) ([]model.Option, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, option_text, is_correct, weight, order_num
		 FROM question_options WHERE question_id = $1
		 ORDER BY order_num`, questionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []model.Option
	for rows.Next() {
		var o model.Option
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.OptionText, &o.IsCorrect, &o.Weight, &o.OrderNum); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

// DeleteOption removes a single option.
func (r *QuestionRepository) DeleteOption(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM question_options WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type questionRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanQuestions(rows questionRows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.SectionID, &q.QuestionText, &q.QuestionType, &q.Ans, &q.MaxScore, &q.NegativeScore, &q.PartialMarking, &q.OrderNum); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
