package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Response is a user's stored answer to one question within one
// attempt. Exactly one row exists per (attempt, question) pair; the
// store upserts on that key, so resubmitting replaces the payload.
//
// Evaluated marks whether a score has been settled, by auto-grading or
// by a human. A created row starts unevaluated, and a payload overwrite
// leaves the flag untouched.
type Response struct {
	ID                uuid.UUID           `json:"id"`
	AttemptID         uuid.UUID           `json:"attempt_id"`
	QuestionID        uuid.UUID           `json:"question_id"`
	SelectedOptionIDs []uuid.UUID         `json:"selected_option_ids"`
	AnswerText        *string             `json:"answer_text,omitempty"`
	Score             decimal.NullDecimal `json:"score"`
	Evaluated         bool                `json:"evaluated"`
}

// SubmitResponseRequest is the payload for submitting an answer.
// Score is normally omitted; grading fills it in later.
type SubmitResponseRequest struct {
	AttemptID         uuid.UUID   `json:"attempt_id" binding:"required"`
	QuestionID        uuid.UUID   `json:"question_id" binding:"required"`
	SelectedOptionIDs []uuid.UUID `json:"selected_option_ids" binding:"omitempty"`
	AnswerText        *string     `json:"answer_text" binding:"omitempty,max=65535"`
	Score             *string     `json:"score" binding:"omitempty"`
}

// GradeResponseRequest is the payload for manually grading a response.
type GradeResponseRequest struct {
	Score   string  `json:"score" binding:"required"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// ManualGradeRequest is the payload for POST /grading/manual.
type ManualGradeRequest struct {
	ResponseID uuid.UUID `json:"response_id" binding:"required"`
	Score      string    `json:"score" binding:"required"`
	Comment    *string   `json:"comment" binding:"omitempty,max=2000"`
}

// AutoGradeRequest is the payload for POST /grading/auto.
type AutoGradeRequest struct {
	AttemptID uuid.UUID `json:"attempt_id" binding:"required"`
}
