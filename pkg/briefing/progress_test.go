package briefing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

func questions(ids ...string) []entity.Question {
	out := make([]entity.Question, len(ids))
	for i, id := range ids {
		out[i] = entity.Question{ID: id, Kind: entity.KindText}
	}
	return out
}

func TestProgressExcludesHiddenQuestions(t *testing.T) {
	// 10 questions, 3 hidden behind Q1="Não": denominator must be 7.
	qs := questions("Q1", "Q2", "Q3", "Q4", "Q5", "Q6", "Q7")
	hidden := []entity.Question{
		{ID: "H1", Kind: entity.KindText, Rule: &entity.DependencyRule{Ref: "Q1", Allow: []string{"Sim"}}},
		{ID: "H2", Kind: entity.KindText, Rule: &entity.DependencyRule{Ref: "Q1", Allow: []string{"Sim"}}},
		{ID: "H3", Kind: entity.KindText, Rule: &entity.DependencyRule{Ref: "Q1", Allow: []string{"Sim"}}},
	}
	sections := []entity.Section{{ID: "S1", Questions: append(qs, hidden...)}}

	answers := entity.AnswerStore{
		"Q1": entity.StringAnswer("Não"),
		"Q2": entity.StringAnswer("a"),
		"Q3": entity.StringAnswer("b"),
		"Q4": entity.StringAnswer("c"),
		"Q5": entity.StringAnswer("d"),
	}

	// 5 of 7 visible answered -> round(5/7*100) = 71, not 50.
	assert.Equal(t, 71, Progress(sections, answers))
}

func TestProgressEmptyInput(t *testing.T) {
	assert.Equal(t, 0, Progress(nil, entity.AnswerStore{}))
	assert.Equal(t, 0, Progress([]entity.Section{{ID: "S1"}}, nil))
}

func TestProgressFullCompletion(t *testing.T) {
	sections := []entity.Section{{ID: "S1", Questions: questions("Q1", "Q2")}}
	answers := entity.AnswerStore{
		"Q1": entity.StringAnswer("x"),
		"Q2": entity.NumberAnswer(120),
	}
	assert.Equal(t, 100, Progress(sections, answers))
}

func TestSectionComplete(t *testing.T) {
	tests := []struct {
		name    string
		section entity.Section
		answers entity.AnswerStore
		want    bool
	}{
		{
			name: "required questions all answered",
			section: entity.Section{ID: "S1", Questions: []entity.Question{
				{ID: "A", Required: true},
				{ID: "B", Required: true},
				{ID: "C"},
			}},
			answers: entity.AnswerStore{
				"A": entity.StringAnswer("ok"),
				"B": entity.StringAnswer("ok"),
			},
			want: true,
		},
		{
			name: "one required question missing",
			section: entity.Section{ID: "S1", Questions: []entity.Question{
				{ID: "A", Required: true},
				{ID: "B", Required: true},
			}},
			answers: entity.AnswerStore{"A": entity.StringAnswer("ok")},
			want:    false,
		},
		{
			name: "required question with blank answer",
			section: entity.Section{ID: "S1", Questions: []entity.Question{
				{ID: "A", Required: true},
			}},
			answers: entity.AnswerStore{"A": entity.StringAnswer("  ")},
			want:    false,
		},
		{
			name: "no required questions, one answered",
			section: entity.Section{ID: "S1", Questions: []entity.Question{
				{ID: "A"}, {ID: "B"},
			}},
			answers: entity.AnswerStore{"B": entity.StringAnswer("ok")},
			want:    true,
		},
		{
			name: "no required questions, none answered",
			section: entity.Section{ID: "S1", Questions: []entity.Question{
				{ID: "A"}, {ID: "B"},
			}},
			answers: entity.AnswerStore{},
			want:    false,
		},
		{
			name: "hidden required question does not block",
			section: entity.Section{ID: "S1", Questions: []entity.Question{
				{ID: "A", Required: true},
				{ID: "B", Required: true,
					Rule: &entity.DependencyRule{Ref: "A", Allow: []string{"Sim"}}},
			}},
			answers: entity.AnswerStore{"A": entity.StringAnswer("Não")},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SectionComplete(tt.section, tt.answers))
		})
	}
}

func TestCompletedSections(t *testing.T) {
	sections := []entity.Section{
		{ID: "S1", Questions: []entity.Question{{ID: "A", Required: true}}},
		{ID: "S2", Questions: []entity.Question{{ID: "B"}}},
		{ID: "S3", Questions: []entity.Question{{ID: "C"}},
			Rule: &entity.DependencyRule{Ref: "A", Allow: []string{"Sim"}}},
	}
	answers := entity.AnswerStore{"A": entity.StringAnswer("Não")}

	flags := CompletedSections(sections, answers)
	assert.Equal(t, []bool{true, false}, flags)
}
