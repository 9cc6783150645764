package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TestPaper is the participant-facing view of a test: sections,
// questions and options with all answer-key data stripped (ans,
// is_correct, weight, negative_score never leave the server).
type TestPaper struct {
	Test     Test           `json:"test"`
	Sections []PaperSection `json:"sections"`
}

// PaperSection is one section of a paper with its questions.
type PaperSection struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	OrderNum  int             `json:"order_num"`
	Questions []PaperQuestion `json:"questions"`
}

// PaperQuestion is a question as shown to a participant.
type PaperQuestion struct {
	ID           uuid.UUID       `json:"id"`
	QuestionText string          `json:"question_text"`
	QuestionType QuestionType    `json:"question_type"`
	MaxScore     decimal.Decimal `json:"max_score"`
	OrderNum     int             `json:"order_num"`
	Options      []PaperOption   `json:"options"`
}

// PaperOption is an option as shown to a participant.
type PaperOption struct {
	ID         uuid.UUID `json:"id"`
	OptionText string    `json:"option_text"`
	OrderNum   int       `json:"order_num"`
}

// NewTestPaper assembles the participant view from catalog rows.
// Questions are keyed by section id, options by question id.
func NewTestPaper(test *Test, sections []Section, questions map[uuid.UUID][]Question, options map[uuid.UUID][]Option) *TestPaper {
	paper := &TestPaper{
		Test:     *test,
		Sections: make([]PaperSection, 0, len(sections)),
	}
	for _, section := range sections {
		ps := PaperSection{
			ID:        section.ID,
			Title:     section.Title,
			OrderNum:  section.OrderNum,
			Questions: make([]PaperQuestion, 0, len(questions[section.ID])),
		}
		for _, q := range questions[section.ID] {
			pq := PaperQuestion{
				ID:           q.ID,
				QuestionText: q.QuestionText,
				QuestionType: q.QuestionType,
				MaxScore:     q.MaxScore,
				OrderNum:     q.OrderNum,
				Options:      make([]PaperOption, 0, len(options[q.ID])),
			}
			for _, o := range options[q.ID] {
				pq.Options = append(pq.Options, PaperOption{
					ID:         o.ID,
					OptionText: o.OptionText,
					OrderNum:   o.OrderNum,
				})
			}
			ps.Questions = append(ps.Questions, pq)
		}
		paper.Sections = append(paper.Sections, ps)
	}
	return paper
}
