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

// ScoreReport is the read-time score projection for one attempt.
//
// TotalScore is recomputed fresh from the responses and can diverge
// from attempt.total_score, which only covers the last auto-grade
// pass. The recomputed value is the one to trust.
type ScoreReport struct {
	Attempt    *model.Attempt   `json:"attempt"`
	Responses  []model.Response `json:"responses"`
	TotalScore decimal.Decimal  `json:"total_score"`
}

// ReportService builds read-only score projections.
type ReportService struct {
	attempts  AttemptStore
	responses ResponseStore
}

// NewReportService creates a new ReportService.
func NewReportService(attempts AttemptStore, responses ResponseStore) *ReportService {
	return &ReportService{attempts: attempts, responses: responses}
}

// AttemptScoreReport sums every scored response of the attempt. No side
// effects.
func (s *ReportService) AttemptScoreReport(ctx context.Context, attemptID uuid.UUID) (*ScoreReport, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	responses, err := s.responses.ListByAttempt(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	total := decimal.Zero
	for i := range responses {
		if responses[i].Score.Valid {
			total = total.Add(responses[i].Score.Decimal)
		}
	}

	if responses == nil {
		responses = []model.Response{}
	}

	return &ScoreReport{
		Attempt:    attempt,
		Responses:  responses,
		TotalScore: total,
	}, nil
}
