package briefing

import (
	"math"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

// Progress derives the completion percentage (0-100) from the visible subset
// of the template only. Hidden sections and questions never count, so a
// dependency that hides 3 of 10 questions leaves a denominator of 7.
// Empty input degrades to zero, never errors.
func Progress(sections []entity.Section, answers entity.AnswerStore) int {
	total := 0
	answered := 0
	for _, section := range VisibleSections(sections, answers) {
		for _, q := range VisibleQuestions(section.Questions, answers) {
			total++
			if answers.Answered(q.ID) {
				answered++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(answered) / float64(total) * 100))
}

// SectionComplete reports whether a section counts as done. A section with
// required questions is complete iff every visible required question has a
// non-empty answer; one without required questions is complete iff at least
// one of its visible questions is answered.
func SectionComplete(section entity.Section, answers entity.AnswerStore) bool {
	visible := VisibleQuestions(section.Questions, answers)

	hasRequired := false
	for _, q := range visible {
		if q.Required {
			hasRequired = true
			if !answers.Answered(q.ID) {
				return false
			}
		}
	}
	if hasRequired {
		return true
	}

	for _, q := range visible {
		if answers.Answered(q.ID) {
			return true
		}
	}
	return false
}

// CompletedSections returns the per-section completion flags in template
// order, restricted to visible sections.
func CompletedSections(sections []entity.Section, answers entity.AnswerStore) []bool {
	visible := VisibleSections(sections, answers)
	out := make([]bool, len(visible))
	for i, s := range visible {
		out[i] = SectionComplete(s, answers)
	}
	return out
}
