package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/AlzProject/backend/internal/model"
	"github.com/AlzProject/backend/internal/repository"
)

// AttemptService drives the attempt lifecycle:
// in_progress -> submitted -> graded. No transition leaves graded, and
// an attempt never reaches graded without passing through submitted.
type AttemptService struct {
	attempts  AttemptStore
	responses ResponseStore
	questions QuestionStore
	tests     TestStore
	policies  PolicyProvider
	audit     GradeAuditSink
	log       zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	attempts AttemptStore,
	responses ResponseStore,
	questions QuestionStore,
	tests TestStore,
	policies PolicyProvider,
	audit GradeAuditSink,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		attempts:  attempts,
		responses: responses,
		questions: questions,
		tests:     tests,
		policies:  policies,
		audit:     audit,
		log:       log.With().Str("component", "attempt_service").Logger(),
	}
}

// AutoGradeResult is the outcome of one auto-grading pass.
type AutoGradeResult struct {
	Attempt              *model.Attempt `json:"attempt"`
	GradedResponsesCount int            `json:"graded_responses_count"`
}

// StartAttempt creates a fresh in_progress attempt on an existing test.
// A user may hold any number of attempts on the same test.
func (s *AttemptService) StartAttempt(ctx context.Context, testID, userID uuid.UUID) (*model.Attempt, error) {
	if _, err := s.tests.GetByID(ctx, testID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("get test: %w", err)
	}

	attempt := &model.Attempt{
		TestID: testID,
		UserID: userID,
		Status: model.AttemptStatusInProgress,
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}
	return attempt, nil
}

// GetAttempt retrieves a single attempt.
func (s *AttemptService) GetAttempt(ctx context.Context, id uuid.UUID) (*model.Attempt, error) {
	attempt, err := s.attempts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	return attempt, nil
}

// ListAttempts retrieves attempts, optionally filtered by user.
func (s *AttemptService) ListAttempts(ctx context.Context, userID *uuid.UUID, limit, offset int) ([]model.Attempt, int64, error) {
	return s.attempts.List(ctx, userID, limit, offset)
}

// SubmitAttempt moves an attempt to submitted and stamps the submit
// time (defaulting to now). Re-submitting a submitted attempt only
// overwrites submitted_at; a graded attempt is returned unchanged, so
// no transition leaves graded. Grading is a separate step.
func (s *AttemptService) SubmitAttempt(ctx context.Context, id uuid.UUID, submitTime *time.Time) (*model.Attempt, error) {
	attempt, err := s.attempts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	if attempt.Status == model.AttemptStatusGraded {
		return attempt, nil
	}

	at := time.Now()
	if submitTime != nil {
		at = *submitTime
	}

	attempt, err = s.attempts.SetSubmitted(ctx, id, at)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("submit attempt: %w", err)
	}
	return attempt, nil
}

// AutoGradeAttempt scores every auto-gradable response of an attempt
// and closes the attempt when nothing is left unevaluated.
//
// The read-compute-write-reread sequence is not transactionally
// isolated: a concurrent manual grade or second pass inside the window
// can be overwritten or race the status decision. Auto-grading also
// recomputes unconditionally, so a manual grade on an auto-gradable
// question does not survive a later pass.
//
// The persisted total covers only responses graded in this pass;
// the score report recomputes the full sum on read.
func (s *AttemptService) AutoGradeAttempt(ctx context.Context, attemptID uuid.UUID) (*AutoGradeResult, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	policy, err := s.policies.TestPolicy(ctx, attempt.TestID)
	if err != nil {
		return nil, fmt.Errorf("get test policy: %w", err)
	}

	responses, err := s.responses.ListByAttempt(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	questionIDs := make([]uuid.UUID, 0, len(responses))
	for i := range responses {
		questionIDs = append(questionIDs, responses[i].QuestionID)
	}
	questions, err := s.questions.GetManyWithOptions(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	passTotal := decimal.Zero
	graded := 0
	for i := range responses {
		resp := &responses[i]
		qw, ok := questions[resp.QuestionID]
		if !ok || !qw.Question.QuestionType.AutoGradable() {
			continue
		}

		score, settled := Grade(&qw.Question, qw.Options, resp, policy)
		if !settled {
			// Unparseable numerical answer: leave for manual grading.
			continue
		}

		if _, err := s.responses.SetGrade(ctx, resp.ID, score); err != nil {
			return nil, fmt.Errorf("persist grade: %w", err)
		}
		passTotal = passTotal.Add(score)
		graded++
	}

	// Re-read to decide the terminal status. Only a submitted attempt
	// may advance to graded; a graded one never regresses.
	unevaluated, err := s.responses.CountUnevaluated(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("count unevaluated: %w", err)
	}

	switch {
	case unevaluated == 0 && attempt.Status != model.AttemptStatusInProgress:
		attempt, err = s.attempts.SetGraded(ctx, attemptID, passTotal)
	default:
		attempt, err = s.attempts.SetTotalScore(ctx, attemptID, passTotal)
	}
	if err != nil {
		return nil, fmt.Errorf("finalize attempt: %w", err)
	}

	s.log.Info().
		Str("attempt_id", attemptID.String()).
		Int("graded", graded).
		Int64("unevaluated", unevaluated).
		Str("status", string(attempt.Status)).
		Msg("Auto-grade pass finished")

	return &AutoGradeResult{Attempt: attempt, GradedResponsesCount: graded}, nil
}

// GradeResponse records a manually assigned score for any question
// type, overriding a previous auto-grade if one exists. It does not
// re-derive the attempt's status or total; a follow-up auto-grade pass
// or the score report picks the change up. The comment is not stored on
// the response — it goes to the audit trail.
func (s *AttemptService) GradeResponse(ctx context.Context, responseID uuid.UUID, score decimal.Decimal, graderID uuid.UUID, comment *string) (*model.Response, error) {
	resp, err := s.responses.SetGrade(ctx, responseID, score)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, fmt.Errorf("grade response: %w", err)
	}

	s.audit.Enqueue(ctx, model.GradeAuditEvent{
		ResponseID: responseID,
		GraderID:   graderID,
		Score:      score.String(),
		Comment:    comment,
	})

	return resp, nil
}
