package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlzProject/backend/internal/model"
	"github.com/AlzProject/backend/internal/repository"
)

// ResponseService handles answer submission and lookup.
type ResponseService struct {
	responses ResponseStore
	attempts  AttemptStore
	questions QuestionStore
}

// NewResponseService creates a new ResponseService.
func NewResponseService(responses ResponseStore, attempts AttemptStore, questions QuestionStore) *ResponseService {
	return &ResponseService{
		responses: responses,
		attempts:  attempts,
		questions: questions,
	}
}

// SubmitResponse stores the latest answer for (attempt, question). Both
// references must exist. Resubmission silently replaces the previous
// payload; the store's upsert keeps exactly one row per key even under
// concurrent submission. Score is normally nil — grading fills it in.
func (s *ResponseService) SubmitResponse(ctx context.Context, req *model.SubmitResponseRequest, score *decimal.Decimal) (*model.Response, error) {
	exists, err := s.attempts.Exists(ctx, req.AttemptID)
	if err != nil {
		return nil, fmt.Errorf("check attempt: %w", err)
	}
	if !exists {
		return nil, ErrAttemptNotFound
	}

	exists, err = s.questions.Exists(ctx, req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("check question: %w", err)
	}
	if !exists {
		return nil, ErrQuestionNotFound
	}

	resp := &model.Response{
		AttemptID:         req.AttemptID,
		QuestionID:        req.QuestionID,
		SelectedOptionIDs: req.SelectedOptionIDs,
		AnswerText:        req.AnswerText,
	}
	if err := s.responses.Upsert(ctx, resp, score); err != nil {
		return nil, fmt.Errorf("upsert response: %w", err)
	}
	return resp, nil
}

// GetResponse retrieves a single response.
func (s *ResponseService) GetResponse(ctx context.Context, id uuid.UUID) (*model.Response, error) {
	resp, err := s.responses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, fmt.Errorf("get response: %w", err)
	}
	return resp, nil
}

// ListResponses retrieves responses with optional attempt/question filters.
func (s *ResponseService) ListResponses(ctx context.Context, attemptID, questionID *uuid.UUID, limit, offset int) ([]model.Response, int64, error) {
	return s.responses.List(ctx, attemptID, questionID, limit, offset)
}
