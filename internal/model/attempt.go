package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AttemptStatus enumerates attempt lifecycle states. Transitions only
// move forward: in_progress -> submitted -> graded.
type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusSubmitted  AttemptStatus = "submitted"
	AttemptStatusGraded     AttemptStatus = "graded"
)

// Attempt represents one user's run through one test. A user may hold
// any number of attempts on the same test.
//
// TotalScore is set by the auto-grading pass and covers only the
// responses graded in that pass; the score report recomputes the full
// sum on read and is the value to trust after mixed auto/manual grading.
type Attempt struct {
	ID          uuid.UUID           `json:"id"`
	TestID      uuid.UUID           `json:"test_id"`
	UserID      uuid.UUID           `json:"user_id"`
	StartedAt   time.Time           `json:"started_at"`
	SubmittedAt *time.Time          `json:"submitted_at,omitempty"`
	TotalScore  decimal.NullDecimal `json:"total_score"`
	Status      AttemptStatus       `json:"status"`
}

// StartAttemptRequest is the payload for starting an attempt.
type StartAttemptRequest struct {
	TestID uuid.UUID `json:"test_id" binding:"required"`
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// SubmitAttemptRequest is the payload for submitting an attempt.
// SubmitTime defaults to the server clock when omitted.
type SubmitAttemptRequest struct {
	SubmitTime *time.Time `json:"submit_time" binding:"omitempty"`
}
