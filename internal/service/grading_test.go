package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlzProject/backend/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strptr(s string) *string { return &s }

func choiceQuestion(t model.QuestionType, maxScore, negativeScore string, partial bool) *model.Question {
	return &model.Question{
		ID:             uuid.New(),
		QuestionType:   t,
		MaxScore:       dec(maxScore),
		NegativeScore:  dec(negativeScore),
		PartialMarking: partial,
	}
}

func TestGradeSingleChoice(t *testing.T) {
	q := choiceQuestion(model.QuestionTypeSingleChoice, "2", "0.5", false)
	correct := model.Option{ID: uuid.New(), QuestionID: q.ID, IsCorrect: true}
	wrong := model.Option{ID: uuid.New(), QuestionID: q.ID}
	options := []model.Option{correct, wrong}

	tests := []struct {
		name     string
		selected []uuid.UUID
		want     string
	}{
		{"correct option earns max score", []uuid.UUID{correct.ID}, "2"},
		{"wrong option earns the assigned wrong-answer score", []uuid.UUID{wrong.ID}, "0.5"},
		{"empty selection earns zero, not the wrong-answer score", nil, "0"},
		{"multiple selections never earn max score", []uuid.UUID{correct.ID, wrong.ID}, "0.5"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := &model.Response{SelectedOptionIDs: tc.selected}
			score, settled := Grade(q, options, resp, model.TestPolicy{})
			if !settled {
				t.Fatal("expected a settled score")
			}
			if !score.Equal(dec(tc.want)) {
				t.Fatalf("score = %s, want %s", score, tc.want)
			}
		})
	}
}

func TestGradeMultiChoicePartial(t *testing.T) {
	q := choiceQuestion(model.QuestionTypeMultiChoice, "10", "1", true)
	a := model.Option{ID: uuid.New(), QuestionID: q.ID, IsCorrect: true, Weight: dec("0.6")}
	b := model.Option{ID: uuid.New(), QuestionID: q.ID, IsCorrect: true, Weight: dec("0.4")}
	c := model.Option{ID: uuid.New(), QuestionID: q.ID}
	options := []model.Option{a, b, c}
	policy := model.TestPolicy{AllowPartialMarking: true}

	tests := []struct {
		name     string
		selected []uuid.UUID
		want     string
	}{
		{"full correct set earns full score", []uuid.UUID{a.ID, b.ID}, "10"},
		{"partial selection earns the weighted share", []uuid.UUID{a.ID}, "6"},
		{"wrong extra draws no penalty", []uuid.UUID{a.ID, c.ID}, "6"},
		{"only wrong options earn zero", []uuid.UUID{c.ID}, "0"},
		{"duplicate selections count once", []uuid.UUID{a.ID, a.ID}, "6"},
		{"empty selection earns zero", nil, "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := &model.Response{SelectedOptionIDs: tc.selected}
			score, settled := Grade(q, options, resp, policy)
			if !settled {
				t.Fatal("expected a settled score")
			}
			if !score.Equal(dec(tc.want)) {
				t.Fatalf("score = %s, want %s", score, tc.want)
			}
		})
	}
}

// Partial marking needs both the test policy and the question flag; if
// either is off, multi-choice falls back to all-or-nothing.
func TestGradeMultiChoicePartialGating(t *testing.T) {
	a := model.Option{ID: uuid.New(), IsCorrect: true, Weight: dec("0.6")}
	b := model.Option{ID: uuid.New(), IsCorrect: true, Weight: dec("0.4")}
	options := []model.Option{a, b}
	selected := []uuid.UUID{a.ID}

	tests := []struct {
		name           string
		policyAllows   bool
		questionOptsIn bool
		want           string
	}{
		{"both flags on", true, true, "6"},
		{"policy off", false, true, "1"},
		{"question off", true, false, "1"},
		{"both off", false, false, "1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := choiceQuestion(model.QuestionTypeMultiChoice, "10", "1", tc.questionOptsIn)
			resp := &model.Response{SelectedOptionIDs: selected}
			score, settled := Grade(q, options, resp, model.TestPolicy{AllowPartialMarking: tc.policyAllows})
			if !settled {
				t.Fatal("expected a settled score")
			}
			if !score.Equal(dec(tc.want)) {
				t.Fatalf("score = %s, want %s", score, tc.want)
			}
		})
	}
}

func TestGradeMultiChoiceAllOrNothing(t *testing.T) {
	q := choiceQuestion(model.QuestionTypeMultiChoice, "10", "2", false)
	a := model.Option{ID: uuid.New(), QuestionID: q.ID, IsCorrect: true}
	b := model.Option{ID: uuid.New(), QuestionID: q.ID, IsCorrect: true}
	c := model.Option{ID: uuid.New(), QuestionID: q.ID}
	options := []model.Option{a, b, c}

	tests := []struct {
		name     string
		selected []uuid.UUID
		want     string
	}{
		{"exact correct set earns full score", []uuid.UUID{a.ID, b.ID}, "10"},
		{"missing a correct option earns the wrong-answer score", []uuid.UUID{a.ID}, "2"},
		{"a wrong extra earns the wrong-answer score", []uuid.UUID{a.ID, b.ID, c.ID}, "2"},
		{"empty selection earns zero", nil, "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := &model.Response{SelectedOptionIDs: tc.selected}
			score, settled := Grade(q, options, resp, model.TestPolicy{})
			if !settled {
				t.Fatal("expected a settled score")
			}
			if !score.Equal(dec(tc.want)) {
				t.Fatalf("score = %s, want %s", score, tc.want)
			}
		})
	}
}

func TestGradeNumerical(t *testing.T) {
	tests := []struct {
		name        string
		ans         *string
		answer      *string
		want        string
		wantSettled bool
	}{
		{"exact match earns max score", strptr("3.14"), strptr("3.14"), "5", true},
		{"equivalent notation matches", strptr("3.14"), strptr("3.140"), "5", true},
		{"mismatch earns the wrong-answer score", strptr("3.14"), strptr("3.15"), "1", true},
		{"unparseable answer stays unevaluated", strptr("3.14"), strptr("abc"), "0", false},
		{"missing answer stays unevaluated", strptr("3.14"), nil, "0", false},
		{"unparseable expected value stays unevaluated", strptr("n/a"), strptr("3.14"), "0", false},
		{"missing expected value stays unevaluated", nil, strptr("3.14"), "0", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := choiceQuestion(model.QuestionTypeNumerical, "5", "1", false)
			q.Ans = tc.ans
			resp := &model.Response{AnswerText: tc.answer}
			score, settled := Grade(q, nil, resp, model.TestPolicy{})
			if settled != tc.wantSettled {
				t.Fatalf("settled = %v, want %v", settled, tc.wantSettled)
			}
			if !score.Equal(dec(tc.want)) {
				t.Fatalf("score = %s, want %s", score, tc.want)
			}
		})
	}
}

func TestGradeManualTypesAreNotSettled(t *testing.T) {
	for _, typ := range []model.QuestionType{model.QuestionTypeFreeText, model.QuestionTypeFileUpload} {
		q := choiceQuestion(typ, "5", "0", false)
		resp := &model.Response{AnswerText: strptr("anything")}
		if _, settled := Grade(q, nil, resp, model.TestPolicy{}); settled {
			t.Fatalf("%s must wait for manual grading", typ)
		}
	}
}

// Repeated weighted additions must not accumulate float error. Ten
// options worth 0.1 each of a 1-point question sum to exactly 1.
func TestGradePartialSumIsExact(t *testing.T) {
	q := choiceQuestion(model.QuestionTypeMultiChoice, "1", "0", true)
	options := make([]model.Option, 10)
	selected := make([]uuid.UUID, 10)
	for i := range options {
		options[i] = model.Option{ID: uuid.New(), QuestionID: q.ID, IsCorrect: true, Weight: dec("0.1")}
		selected[i] = options[i].ID
	}

	resp := &model.Response{SelectedOptionIDs: selected}
	score, settled := Grade(q, options, resp, model.TestPolicy{AllowPartialMarking: true})
	if !settled {
		t.Fatal("expected a settled score")
	}
	if !score.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("score = %s, want exactly 1", score)
	}
}
