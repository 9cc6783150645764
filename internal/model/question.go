package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "single_choice"
	QuestionTypeMultiChoice  QuestionType = "multi_choice"
	QuestionTypeNumerical    QuestionType = "numerical"
	QuestionTypeFreeText     QuestionType = "free_text"
	QuestionTypeFileUpload   QuestionType = "file_upload"
)

// AutoGradable reports whether the engine can score this type without a
// human grader. Free-text and file-upload answers always wait for one.
func (t QuestionType) AutoGradable() bool {
	switch t {
	case QuestionTypeSingleChoice, QuestionTypeMultiChoice, QuestionTypeNumerical:
		return true
	}
	return false
}

// Question represents a single test question.
//
// NegativeScore is the flat score assigned to an incorrect graded
// answer. It is validated non-negative and assigned as-is, not
// subtracted; the original product behaves this way and the engine
// preserves it.
type Question struct {
	ID             uuid.UUID       `json:"id"`
	SectionID      uuid.UUID       `json:"section_id"`
	QuestionText   string          `json:"question_text"`
	QuestionType   QuestionType    `json:"question_type"`
	Ans            *string         `json:"ans,omitempty"`
	MaxScore       decimal.Decimal `json:"max_score"`
	NegativeScore  decimal.Decimal `json:"negative_score"`
	PartialMarking bool            `json:"partial_marking"`
	OrderNum       int             `json:"order_num"`
}

// AddQuestionRequest is the payload for adding a question to a section.
type AddQuestionRequest struct {
	QuestionText   string  `json:"question_text" binding:"required,min=1,max=4000"`
	QuestionType   string  `json:"question_type" binding:"required,oneof=single_choice multi_choice numerical free_text file_upload"`
	Ans            *string `json:"ans" binding:"omitempty,max=255"`
	MaxScore       string  `json:"max_score" binding:"required"`
	NegativeScore  string  `json:"negative_score" binding:"omitempty"`
	PartialMarking bool    `json:"partial_marking"`
	OrderNum       int     `json:"order_num" binding:"min=0"`
}
