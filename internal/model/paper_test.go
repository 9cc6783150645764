package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewTestPaper(t *testing.T) {
	ans := "42"
	test := &Test{ID: uuid.New(), Title: "Quiz", AllowPartialMarking: true}
	sections := []Section{
		{ID: uuid.New(), TestID: test.ID, Title: "A", OrderNum: 1},
		{ID: uuid.New(), TestID: test.ID, Title: "B", OrderNum: 2},
	}
	q1 := Question{
		ID: uuid.New(), SectionID: sections[0].ID,
		QuestionText: "Select the prime.", QuestionType: QuestionTypeMultiChoice,
		MaxScore: decimal.NewFromInt(10), NegativeScore: decimal.NewFromInt(2),
		PartialMarking: true, OrderNum: 1,
	}
	q2 := Question{
		ID: uuid.New(), SectionID: sections[1].ID,
		QuestionText: "The answer to everything?", QuestionType: QuestionTypeNumerical,
		Ans: &ans, MaxScore: decimal.NewFromInt(5), OrderNum: 1,
	}
	o1 := Option{ID: uuid.New(), QuestionID: q1.ID, OptionText: "7", IsCorrect: true, Weight: decimal.NewFromInt(1), OrderNum: 1}
	o2 := Option{ID: uuid.New(), QuestionID: q1.ID, OptionText: "9", OrderNum: 2}

	paper := NewTestPaper(test, sections,
		map[uuid.UUID][]Question{sections[0].ID: {q1}, sections[1].ID: {q2}},
		map[uuid.UUID][]Option{q1.ID: {o1, o2}},
	)

	if len(paper.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(paper.Sections))
	}
	if len(paper.Sections[0].Questions) != 1 || paper.Sections[0].Questions[0].ID != q1.ID {
		t.Fatalf("section A questions = %+v", paper.Sections[0].Questions)
	}
	if got := paper.Sections[0].Questions[0].Options; len(got) != 2 || got[0].ID != o1.ID {
		t.Fatalf("q1 options = %+v", got)
	}
	if len(paper.Sections[1].Questions[0].Options) != 0 {
		t.Fatal("numerical question must carry no options")
	}
}

// The serialized paper must never leak answer-key data.
func TestTestPaperStripsAnswerKey(t *testing.T) {
	ans := "3.14"
	test := &Test{ID: uuid.New(), Title: "Quiz"}
	section := Section{ID: uuid.New(), TestID: test.ID, Title: "A"}
	q := Question{
		ID: uuid.New(), SectionID: section.ID,
		QuestionText: "pi?", QuestionType: QuestionTypeNumerical,
		Ans: &ans, MaxScore: decimal.NewFromInt(5), NegativeScore: decimal.NewFromInt(1),
	}
	o := Option{ID: uuid.New(), QuestionID: q.ID, OptionText: "x", IsCorrect: true, Weight: decimal.NewFromInt(1)}

	paper := NewTestPaper(test, []Section{section},
		map[uuid.UUID][]Question{section.ID: {q}},
		map[uuid.UUID][]Option{q.ID: {o}},
	)

	raw, err := json.Marshal(paper)
	if err != nil {
		t.Fatalf("marshal paper: %v", err)
	}
	body := string(raw)
	for _, leak := range []string{"3.14", "is_correct", "weight", "negative_score", `"ans"`} {
		if strings.Contains(body, leak) {
			t.Fatalf("paper JSON leaks %q: %s", leak, body)
		}
	}
}
