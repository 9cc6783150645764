package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Option is one selectable answer for a choice question. Weight is the
// fraction of the question's MaxScore this option earns when selected
// under partial marking; it is ignored in all-or-nothing mode.
type Option struct {
	ID         uuid.UUID       `json:"id"`
	QuestionID uuid.UUID       `json:"question_id"`
	OptionText string          `json:"option_text"`
	IsCorrect  bool            `json:"is_correct"`
	Weight     decimal.Decimal `json:"weight"`
	OrderNum   int             `json:"order_num"`
}

// AddOptionRequest is the payload for adding an option to a question.
type AddOptionRequest struct {
	OptionText string `json:"option_text" binding:"required,min=1,max=2000"`
	IsCorrect  bool   `json:"is_correct"`
	Weight     string `json:"weight" binding:"omitempty"`
	OrderNum   int    `json:"order_num" binding:"min=0"`
}
