package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlzProject/backend/internal/model"
	"github.com/AlzProject/backend/internal/repository"
)

// In-memory fakes standing in for the pgx repositories.

type fakeTestStore struct {
	mu    sync.Mutex
	tests map[uuid.UUID]*model.Test
}

func newFakeTestStore() *fakeTestStore {
	return &fakeTestStore{tests: make(map[uuid.UUID]*model.Test)}
}

func (s *fakeTestStore) add(t *model.Test) *model.Test {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.tests[t.ID] = t
	return t
}

func (s *fakeTestStore) GetByID(_ context.Context, id uuid.UUID) (*model.Test, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// TestPolicy lets the fake double as a PolicyProvider without the Redis
// cache in between.
func (s *fakeTestStore) TestPolicy(ctx context.Context, testID uuid.UUID) (model.TestPolicy, error) {
	t, err := s.GetByID(ctx, testID)
	if err != nil {
		return model.TestPolicy{}, ErrTestNotFound
	}
	return t.Policy(), nil
}

type fakeAttemptStore struct {
	mu       sync.Mutex
	attempts map[uuid.UUID]*model.Attempt
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{attempts: make(map[uuid.UUID]*model.Attempt)}
}

func (s *fakeAttemptStore) Create(_ context.Context, a *model.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.New()
	a.StartedAt = time.Now()
	a.Status = model.AttemptStatusInProgress
	cp := *a
	s.attempts[a.ID] = &cp
	return nil
}

func (s *fakeAttemptStore) GetByID(_ context.Context, id uuid.UUID) (*model.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAttemptStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.attempts[id]
	return ok, nil
}

func (s *fakeAttemptStore) SetSubmitted(_ context.Context, id uuid.UUID, submittedAt time.Time) (*model.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.Status = model.AttemptStatusSubmitted
	a.SubmittedAt = &submittedAt
	cp := *a
	return &cp, nil
}

func (s *fakeAttemptStore) SetGraded(_ context.Context, id uuid.UUID, total decimal.Decimal) (*model.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.Status = model.AttemptStatusGraded
	a.TotalScore = decimal.NullDecimal{Decimal: total, Valid: true}
	cp := *a
	return &cp, nil
}

func (s *fakeAttemptStore) SetTotalScore(_ context.Context, id uuid.UUID, total decimal.Decimal) (*model.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.TotalScore = decimal.NullDecimal{Decimal: total, Valid: true}
	cp := *a
	return &cp, nil
}

func (s *fakeAttemptStore) List(_ context.Context, userID *uuid.UUID, limit, offset int) ([]model.Attempt, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Attempt
	for _, a := range s.attempts {
		if userID != nil && a.UserID != *userID {
			continue
		}
		out = append(out, *a)
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

type responseKey struct {
	attemptID  uuid.UUID
	questionID uuid.UUID
}

type fakeResponseStore struct {
	mu    sync.Mutex
	byKey map[responseKey]*model.Response
	byID  map[uuid.UUID]*model.Response
}

func newFakeResponseStore() *fakeResponseStore {
	return &fakeResponseStore{
		byKey: make(map[responseKey]*model.Response),
		byID:  make(map[uuid.UUID]*model.Response),
	}
}

// Upsert mirrors the ON CONFLICT semantics of the SQL store: one row
// per key, payload overwritten on conflict, evaluated untouched, score
// written only when supplied.
func (s *fakeResponseStore) Upsert(_ context.Context, resp *model.Response, score *decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := responseKey{attemptID: resp.AttemptID, questionID: resp.QuestionID}
	existing, ok := s.byKey[key]
	if !ok {
		resp.ID = uuid.New()
		resp.Evaluated = false
		if score != nil {
			resp.Score = decimal.NullDecimal{Decimal: *score, Valid: true}
		}
		cp := *resp
		s.byKey[key] = &cp
		s.byID[resp.ID] = &cp
		return nil
	}

	existing.SelectedOptionIDs = resp.SelectedOptionIDs
	existing.AnswerText = resp.AnswerText
	if score != nil {
		existing.Score = decimal.NullDecimal{Decimal: *score, Valid: true}
	}
	*resp = *existing
	return nil
}

func (s *fakeResponseStore) GetByID(_ context.Context, id uuid.UUID) (*model.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeResponseStore) SetGrade(_ context.Context, id uuid.UUID, score decimal.Decimal) (*model.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	r.Score = decimal.NullDecimal{Decimal: score, Valid: true}
	r.Evaluated = true
	cp := *r
	return &cp, nil
}

func (s *fakeResponseStore) ListByAttempt(_ context.Context, attemptID uuid.UUID) ([]model.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Response
	for _, r := range s.byID {
		if r.AttemptID == attemptID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeResponseStore) List(_ context.Context, attemptID, questionID *uuid.UUID, limit, offset int) ([]model.Response, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Response
	for _, r := range s.byID {
		if attemptID != nil && r.AttemptID != *attemptID {
			continue
		}
		if questionID != nil && r.QuestionID != *questionID {
			continue
		}
		out = append(out, *r)
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (s *fakeResponseStore) CountUnevaluated(_ context.Context, attemptID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.byID {
		if r.AttemptID == attemptID && !r.Evaluated {
			n++
		}
	}
	return n, nil
}

type fakeQuestionStore struct {
	mu        sync.Mutex
	questions map[uuid.UUID]*repository.QuestionWithOptions
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: make(map[uuid.UUID]*repository.QuestionWithOptions)}
}

func (s *fakeQuestionStore) add(q model.Question, options ...model.Option) model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	for i := range options {
		if options[i].ID == uuid.Nil {
			options[i].ID = uuid.New()
		}
		options[i].QuestionID = q.ID
	}
	s.questions[q.ID] = &repository.QuestionWithOptions{Question: q, Options: options}
	return q
}

func (s *fakeQuestionStore) options(id uuid.UUID) []model.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[id].Options
}

func (s *fakeQuestionStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.questions[id]
	return ok, nil
}

func (s *fakeQuestionStore) GetManyWithOptions(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*repository.QuestionWithOptions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]*repository.QuestionWithOptions, len(ids))
	for _, id := range ids {
		if qw, ok := s.questions[id]; ok {
			out[id] = qw
		}
	}
	return out, nil
}

type fakeAuditSink struct {
	mu     sync.Mutex
	events []model.GradeAuditEvent
}

func (s *fakeAuditSink) Enqueue(_ context.Context, ev model.GradeAuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}
