package briefing

import (
	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

// VisibleSections filters sections by their dependency rules against the
// current answers. Pure: callers re-run it after every answer mutation and
// it is the sole gate for whether a section counts.
func VisibleSections(sections []entity.Section, answers entity.AnswerStore) []entity.Section {
	out := make([]entity.Section, 0, len(sections))
	for _, s := range sections {
		if ResolveRule(s.Rule, answers) {
			out = append(out, s)
		}
	}
	return out
}

// VisibleQuestions filters questions the same way at question level.
func VisibleQuestions(questions []entity.Question, answers entity.AnswerStore) []entity.Question {
	out := make([]entity.Question, 0, len(questions))
	for _, q := range questions {
		if ResolveRule(q.Rule, answers) {
			out = append(out, q)
		}
	}
	return out
}

// SectionVisible resolves a single section without building a slice.
func SectionVisible(section entity.Section, answers entity.AnswerStore) bool {
	return ResolveRule(section.Rule, answers)
}

// QuestionVisible resolves a single question without building a slice.
func QuestionVisible(question entity.Question, answers entity.AnswerStore) bool {
	return ResolveRule(question.Rule, answers)
}
