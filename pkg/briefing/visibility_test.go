package briefing

import (
	"testing"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

func TestResolveRule(t *testing.T) {
	tests := []struct {
		name    string
		rule    *entity.DependencyRule
		answers entity.AnswerStore
		want    bool
	}{
		{
			name:    "no rule is always visible",
			rule:    nil,
			answers: entity.AnswerStore{},
			want:    true,
		},
		{
			name:    "deny list hides on listed value",
			rule:    &entity.DependencyRule{Ref: "Q1", Deny: []string{"Não"}},
			answers: entity.AnswerStore{"Q1": entity.StringAnswer("Não")},
			want:    false,
		},
		{
			name:    "deny list shows on any other value",
			rule:    &entity.DependencyRule{Ref: "Q1", Deny: []string{"Não"}},
			answers: entity.AnswerStore{"Q1": entity.StringAnswer("Sim")},
			want:    true,
		},
		{
			name:    "deny list hides when referenced answer absent",
			rule:    &entity.DependencyRule{Ref: "Q1", Deny: []string{"Não"}},
			answers: entity.AnswerStore{},
			want:    false,
		},
		{
			name:    "deny list hides when referenced answer is blank",
			rule:    &entity.DependencyRule{Ref: "Q1", Deny: []string{"Não"}},
			answers: entity.AnswerStore{"Q1": entity.StringAnswer("   ")},
			want:    false,
		},
		{
			name:    "allow list shows on listed value",
			rule:    &entity.DependencyRule{Ref: "Q1", Allow: []string{"Sim", "Talvez"}},
			answers: entity.AnswerStore{"Q1": entity.StringAnswer("Talvez")},
			want:    true,
		},
		{
			name:    "allow list hides on unlisted value",
			rule:    &entity.DependencyRule{Ref: "Q1", Allow: []string{"Sim", "Talvez"}},
			answers: entity.AnswerStore{"Q1": entity.StringAnswer("Não")},
			want:    false,
		},
		{
			name:    "allow list hides when referenced answer absent",
			rule:    &entity.DependencyRule{Ref: "Q1", Allow: []string{"Sim"}},
			answers: entity.AnswerStore{},
			want:    false,
		},
		{
			name:    "allow list matches multiselect membership",
			rule:    &entity.DependencyRule{Ref: "Q1", Allow: []string{"Estrutura"}},
			answers: entity.AnswerStore{"Q1": entity.ListAnswer([]string{"Hidráulica", "Estrutura"})},
			want:    true,
		},
		{
			name:    "deny list matches multiselect membership",
			rule:    &entity.DependencyRule{Ref: "Q1", Deny: []string{"Nenhum"}},
			answers: entity.AnswerStore{"Q1": entity.ListAnswer([]string{"Nenhum"})},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRule(tt.rule, tt.answers)
			if got != tt.want {
				t.Errorf("ResolveRule() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleQuestionsIsPure(t *testing.T) {
	questions := []entity.Question{
		{ID: "Q1", Prompt: "Possui terreno?", Kind: entity.KindRadio},
		{ID: "Q2", Prompt: "Metragem do terreno", Kind: entity.KindNumber,
			Rule: &entity.DependencyRule{Ref: "Q1", Allow: []string{"Sim"}}},
		{ID: "Q3", Prompt: "Observações", Kind: entity.KindLongText,
			Rule: &entity.DependencyRule{Ref: "Q1", Deny: []string{"Não"}}},
	}
	answers := entity.AnswerStore{"Q1": entity.StringAnswer("Sim")}

	first := VisibleQuestions(questions, answers)
	second := VisibleQuestions(questions, answers)

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected all questions visible, got %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("re-evaluation diverged at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestVisibleSections(t *testing.T) {
	sections := []entity.Section{
		{ID: "S1", Name: "Dados Gerais"},
		{ID: "S2", Name: "Terreno",
			Rule: &entity.DependencyRule{Ref: "Q1", Allow: []string{"Sim"}}},
		{ID: "S3", Name: "Reforma",
			Rule: &entity.DependencyRule{Ref: "Q2", Deny: []string{"Construção nova"}}},
	}

	answers := entity.AnswerStore{
		"Q1": entity.StringAnswer("Não"),
		"Q2": entity.StringAnswer("Construção nova"),
	}

	visible := VisibleSections(sections, answers)
	if len(visible) != 1 {
		t.Fatalf("expected 1 visible section, got %d", len(visible))
	}
	if visible[0].ID != "S1" {
		t.Errorf("expected S1, got %s", visible[0].ID)
	}
}
