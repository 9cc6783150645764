package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/AlzProject/backend/internal/model"
)

func TestSubmitResponseCreatesUnevaluated(t *testing.T) {
	e := newEnv()
	ts := e.tests.add(&model.Test{Title: "Quiz"})
	q := e.questions.add(
		model.Question{QuestionType: model.QuestionTypeSingleChoice, MaxScore: dec("2")},
		model.Option{IsCorrect: true},
	)
	attempt := e.startAttempt(t, ts.ID)

	resp := e.submitResponse(t, attempt.ID, q.ID, []uuid.UUID{e.questions.options(q.ID)[0].ID}, nil)
	if resp.ID == uuid.Nil {
		t.Fatal("response ID not assigned")
	}
	if resp.Evaluated {
		t.Fatal("a fresh response must start unevaluated")
	}
	if resp.Score.Valid {
		t.Fatal("a fresh response must carry no score")
	}
}

// Resubmitting a question keeps one row: the payload is replaced while
// id, score and evaluated survive.
func TestSubmitResponseUpsertsOnResubmit(t *testing.T) {
	e := newEnv()
	ts := e.tests.add(&model.Test{Title: "Quiz"})
	q := e.questions.add(
		model.Question{QuestionType: model.QuestionTypeMultiChoice, MaxScore: dec("10")},
		model.Option{IsCorrect: true},
		model.Option{},
	)
	attempt := e.startAttempt(t, ts.ID)
	opts := e.questions.options(q.ID)

	first := e.submitResponse(t, attempt.ID, q.ID, []uuid.UUID{opts[0].ID}, nil)
	if _, err := e.attemptSvc.GradeResponse(context.Background(), first.ID, dec("4"), uuid.New(), nil); err != nil {
		t.Fatalf("manual grade: %v", err)
	}

	second := e.submitResponse(t, attempt.ID, q.ID, []uuid.UUID{opts[1].ID}, nil)
	if second.ID != first.ID {
		t.Fatalf("resubmit created a new row: %s != %s", second.ID, first.ID)
	}
	if len(second.SelectedOptionIDs) != 1 || second.SelectedOptionIDs[0] != opts[1].ID {
		t.Fatalf("payload not replaced: %v", second.SelectedOptionIDs)
	}
	if !second.Evaluated || !second.Score.Decimal.Equal(dec("4")) {
		t.Fatalf("overwrite must keep the existing grade, got %+v", second)
	}

	// Still exactly one row for the pair.
	responses, err := e.responses.ListByAttempt(context.Background(), attempt.ID)
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("rows = %d, want 1", len(responses))
	}
}

func TestSubmitResponseUnknownReferences(t *testing.T) {
	e := newEnv()
	ts := e.tests.add(&model.Test{Title: "Quiz"})
	q := e.questions.add(model.Question{QuestionType: model.QuestionTypeFreeText, MaxScore: dec("5")})
	attempt := e.startAttempt(t, ts.ID)

	_, err := e.responseSvc.SubmitResponse(context.Background(), &model.SubmitResponseRequest{
		AttemptID:  uuid.New(),
		QuestionID: q.ID,
	}, nil)
	if !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("err = %v, want ErrAttemptNotFound", err)
	}

	_, err = e.responseSvc.SubmitResponse(context.Background(), &model.SubmitResponseRequest{
		AttemptID:  attempt.ID,
		QuestionID: uuid.New(),
	}, nil)
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestGetResponseUnknown(t *testing.T) {
	e := newEnv()
	_, err := e.responseSvc.GetResponse(context.Background(), uuid.New())
	if !errors.Is(err, ErrResponseNotFound) {
		t.Fatalf("err = %v, want ErrResponseNotFound", err)
	}
}

func TestListResponsesFilters(t *testing.T) {
	e := newEnv()
	ts := e.tests.add(&model.Test{Title: "Quiz"})
	q1 := e.questions.add(model.Question{QuestionType: model.QuestionTypeFreeText, MaxScore: dec("5")})
	q2 := e.questions.add(model.Question{QuestionType: model.QuestionTypeFreeText, MaxScore: dec("5")})

	a1 := e.startAttempt(t, ts.ID)
	a2 := e.startAttempt(t, ts.ID)
	e.submitResponse(t, a1.ID, q1.ID, nil, strptr("one"))
	e.submitResponse(t, a1.ID, q2.ID, nil, strptr("two"))
	e.submitResponse(t, a2.ID, q1.ID, nil, strptr("three"))

	byAttempt, total, err := e.responseSvc.ListResponses(context.Background(), &a1.ID, nil, 20, 0)
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if total != 2 || len(byAttempt) != 2 {
		t.Fatalf("attempt filter = %d/%d, want 2", len(byAttempt), total)
	}

	byBoth, total, err := e.responseSvc.ListResponses(context.Background(), &a1.ID, &q2.ID, 20, 0)
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if total != 1 || len(byBoth) != 1 || byBoth[0].QuestionID != q2.ID {
		t.Fatalf("attempt+question filter = %d/%d, want exactly one", len(byBoth), total)
	}
}
