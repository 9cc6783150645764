package model

import (
	"time"

	"github.com/google/uuid"
)

// Test represents an assessment definition. The two marking flags are
// test-level policy: AllowPartialMarking gates whether a question's own
// partial-marking opt-in is honored during grading.
type Test struct {
	ID                   uuid.UUID `json:"id"`
	Title                string    `json:"title"`
	AllowNegativeMarking bool      `json:"allow_negative_marking"`
	AllowPartialMarking  bool      `json:"allow_partial_marking"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TestPolicy is the subset of Test the grading engine consults.
type TestPolicy struct {
	AllowNegativeMarking bool `json:"allow_negative_marking"`
	AllowPartialMarking  bool `json:"allow_partial_marking"`
}

// Policy extracts the grading policy from a test.
func (t *Test) Policy() TestPolicy {
	return TestPolicy{
		AllowNegativeMarking: t.AllowNegativeMarking,
		AllowPartialMarking:  t.AllowPartialMarking,
	}
}

// CreateTestRequest is the payload for creating a new test.
type CreateTestRequest struct {
	Title                string `json:"title" binding:"required,min=3,max=255"`
	AllowNegativeMarking bool   `json:"allow_negative_marking"`
	AllowPartialMarking  bool   `json:"allow_partial_marking"`
}

// UpdateTestRequest is the payload for updating an existing test.
type UpdateTestRequest struct {
	Title                string `json:"title" binding:"omitempty,min=3,max=255"`
	AllowNegativeMarking *bool  `json:"allow_negative_marking" binding:"omitempty"`
	AllowPartialMarking  *bool  `json:"allow_partial_marking" binding:"omitempty"`
}
