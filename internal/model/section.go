package model

import (
	"time"

	"github.com/google/uuid"
)

// Section groups questions inside a test. It carries no grading
// semantics of its own.
type Section struct {
	ID        uuid.UUID `json:"id"`
	TestID    uuid.UUID `json:"test_id"`
	Title     string    `json:"title"`
	OrderNum  int       `json:"order_num"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSectionRequest is the payload for adding a section to a test.
type CreateSectionRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=255"`
	OrderNum int    `json:"order_num" binding:"min=0"`
}
