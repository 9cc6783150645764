package service

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AlzProject/backend/internal/model"
)

// Grade scores a single response against its question's configuration
// and the test-level policy. It is pure: no I/O, deterministic, and all
// arithmetic is decimal so repeated weighted terms cannot drift.
//
// The second return value reports whether the score is settled. False
// means grading was skipped — either the type needs a human grader, or
// a numerical answer could not be parsed — and the response must stay
// unevaluated.
//
// An empty selection scores zero, never the wrong-answer score: an
// abstention is not a penalty.
func Grade(q *model.Question, options []model.Option, resp *model.Response, policy model.TestPolicy) (decimal.Decimal, bool) {
	switch q.QuestionType {
	case model.QuestionTypeSingleChoice:
		return gradeSingleChoice(q, options, resp.SelectedOptionIDs)
	case model.QuestionTypeMultiChoice:
		return gradeMultiChoice(q, options, resp.SelectedOptionIDs, policy)
	case model.QuestionTypeNumerical:
		return gradeNumerical(q, resp.AnswerText)
	default:
		// free_text and file_upload wait for manual grading.
		return decimal.Zero, false
	}
}

func gradeSingleChoice(q *model.Question, options []model.Option, selected []uuid.UUID) (decimal.Decimal, bool) {
	if len(selected) == 0 {
		return decimal.Zero, true
	}

	// Exactly one correct option is assumed configured.
	var correctID uuid.UUID
	for _, o := range options {
		if o.IsCorrect {
			correctID = o.ID
			break
		}
	}

	if len(selected) == 1 && selected[0] == correctID {
		return q.MaxScore, true
	}
	return q.NegativeScore, true
}

func gradeMultiChoice(q *model.Question, options []model.Option, selected []uuid.UUID, policy model.TestPolicy) (decimal.Decimal, bool) {
	correct := make(map[uuid.UUID]decimal.Decimal, len(options))
	for _, o := range options {
		if o.IsCorrect {
			correct[o.ID] = o.Weight
		}
	}

	if policy.AllowPartialMarking && q.PartialMarking {
		// Weighted credit for correctly selected options only; wrong
		// extras contribute nothing and draw no penalty in this mode.
		score := decimal.Zero
		seen := make(map[uuid.UUID]bool, len(selected))
		for _, id := range selected {
			if seen[id] {
				continue
			}
			seen[id] = true
			if weight, ok := correct[id]; ok {
				score = score.Add(weight.Mul(q.MaxScore))
			}
		}
		return score, true
	}

	// All-or-nothing: the selection must match the correct set exactly.
	if len(selected) == 0 {
		return decimal.Zero, true
	}
	matched := make(map[uuid.UUID]bool, len(selected))
	exact := true
	for _, id := range selected {
		if _, ok := correct[id]; !ok {
			exact = false
			break
		}
		matched[id] = true
	}
	if exact && len(matched) == len(correct) {
		return q.MaxScore, true
	}
	return q.NegativeScore, true
}

// gradeNumerical compares the parsed answer against the parsed expected
// value. Missing or unparseable input defers the response to manual
// grading instead of erroring out.
func gradeNumerical(q *model.Question, answerText *string) (decimal.Decimal, bool) {
	if answerText == nil || q.Ans == nil {
		return decimal.Zero, false
	}
	got, err := strconv.ParseFloat(*answerText, 64)
	if err != nil {
		return decimal.Zero, false
	}
	want, err := strconv.ParseFloat(*q.Ans, 64)
	if err != nil {
		return decimal.Zero, false
	}

	if got == want {
		return q.MaxScore, true
	}
	return q.NegativeScore, true
}
