package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlzProject/backend/internal/model"
	"github.com/AlzProject/backend/internal/repository"
)

// Consumer-side store interfaces so tests can substitute in-memory
// fakes for the pgx repositories. The repository types satisfy these.

// TestStore provides read access to test definitions.
type TestStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Test, error)
}

// AttemptStore persists attempts.
type AttemptStore interface {
	Create(ctx context.Context, a *model.Attempt) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Attempt, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	SetSubmitted(ctx context.Context, id uuid.UUID, submittedAt time.Time) (*model.Attempt, error)
	SetGraded(ctx context.Context, id uuid.UUID, total decimal.Decimal) (*model.Attempt, error)
	SetTotalScore(ctx context.Context, id uuid.UUID, total decimal.Decimal) (*model.Attempt, error)
	List(ctx context.Context, userID *uuid.UUID, limit, offset int) ([]model.Attempt, int64, error)
}

// ResponseStore persists responses keyed by (attempt, question).
type ResponseStore interface {
	Upsert(ctx context.Context, resp *model.Response, score *decimal.Decimal) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Response, error)
	SetGrade(ctx context.Context, id uuid.UUID, score decimal.Decimal) (*model.Response, error)
	ListByAttempt(ctx context.Context, attemptID uuid.UUID) ([]model.Response, error)
	List(ctx context.Context, attemptID, questionID *uuid.UUID, limit, offset int) ([]model.Response, int64, error)
	CountUnevaluated(ctx context.Context, attemptID uuid.UUID) (int64, error)
}

// QuestionStore provides read access to questions and their options.
type QuestionStore interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	GetManyWithOptions(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*repository.QuestionWithOptions, error)
}

// PolicyProvider resolves a test's grading policy. The catalog service
// backs this with a Redis cache over the tests table.
type PolicyProvider interface {
	TestPolicy(ctx context.Context, testID uuid.UUID) (model.TestPolicy, error)
}

// GradeAuditSink accepts manual-grading audit events for asynchronous
// persistence. Delivery is best-effort; a lost comment never fails the
// grading request.
type GradeAuditSink interface {
	Enqueue(ctx context.Context, ev model.GradeAuditEvent)
}
