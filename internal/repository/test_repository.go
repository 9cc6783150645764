package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlzProject/backend/internal/model"
)

// TestRepository handles test and section data access.
type TestRepository struct {
	pool *pgxpool.Pool
}

// NewTestRepository creates a new TestRepository.
func NewTestRepository(pool *pgxpool.Pool) *TestRepository {
	return &TestRepository{pool: pool}
}

// GetByID retrieves a test by its id.
func (r *TestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Test, error) {
	t := &model.Test{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, allow_negative_marking, allow_partial_marking, created_at, updated_at
		 FROM tests WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.AllowNegativeMarking, &t.AllowPartialMarking, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return t, nil
}

// Create inserts a new test.
func (r *TestRepository) Create(ctx context.Context, t *model.Test) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO tests (title, allow_negative_marking, allow_partial_marking)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		t.Title, t.AllowNegativeMarking, t.AllowPartialMarking,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update overwrites a test's mutable fields.
func (r *TestRepository) Update(ctx context.Context, t *model.Test) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE tests
		 SET title = $2, allow_negative_marking = $3, allow_partial_marking = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		t.ID, t.Title, t.AllowNegativeMarking, t.AllowPartialMarking,
	).Scan(&t.UpdatedAt)
	return wrapNoRows(err)
}

// Delete removes a test and, via FK cascade, its sections and questions.
func (r *TestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List retrieves tests with offset pagination, newest first.
func (r *TestRepository) List(ctx context.Context, limit, offset int) ([]model.Test, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tests`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, title, allow_negative_marking, allow_partial_marking, created_at, updated_at
		 FROM tests
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tests []model.Test
	for rows.Next() {
		var t model.Test
		if err := rows.Scan(&t.ID, &t.Title, &t.AllowNegativeMarking, &t.AllowPartialMarking, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		tests = append(tests, t)
	}
	return tests, total, rows.Err()
}

// CreateSection inserts a new section into a test.
func (r *TestRepository) CreateSection(ctx context.Context, s *model.Section) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO sections (test_id, title, order_num)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		s.TestID, s.Title, s.OrderNum,
	).Scan(&s.ID, &s.CreatedAt)
}

// GetSectionByID retrieves a section by its id.
func (r *TestRepository) GetSectionByID(ctx context.Context, id uuid.UUID) (*model.Section, error) {
	s := &model.Section{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, test_id, title, order_num, created_at
		 FROM sections WHERE id = $1`, id,
	).Scan(&s.ID, &s.TestID, &s.Title, &s.OrderNum, &s.CreatedAt)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return s, nil
}

// ListSectionsByTest retrieves all sections of a test, ordered.
func (r *TestRepository) ListSectionsByTest(ctx context.Context, testID uuid.UUID) ([]model.Section, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, test_id, title, order_num, created_at
		 FROM sections WHERE test_id = $1
		 ORDER BY order_num`, testID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.Section
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.TestID, &s.Title, &s.OrderNum, &s.CreatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// DeleteSection removes a section and its questions.
func (r *TestRepository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
