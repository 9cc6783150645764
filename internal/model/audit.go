package model

import (
	"time"

	"github.com/google/uuid"
)

// GradeAuditEvent is the queue payload for a manual grading action,
// consumed by the audit worker.
type GradeAuditEvent struct {
	ResponseID uuid.UUID `json:"response_id"`
	GraderID   uuid.UUID `json:"grader_id"`
	Score      string    `json:"score"`
	Comment    *string   `json:"comment,omitempty"`
}

// GradeAuditEntry records a manual grading action. Comments are not
// stored on the response itself; they land here, written asynchronously
// by the audit worker.
type GradeAuditEntry struct {
	ID         uuid.UUID `json:"id"`
	ResponseID uuid.UUID `json:"response_id"`
	GraderID   uuid.UUID `json:"grader_id"`
	Score      string    `json:"score"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
