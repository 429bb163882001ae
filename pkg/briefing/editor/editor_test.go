package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

func baseTemplate() entity.Template {
	return entity.Template{
		ID:   "tpl-base",
		Name: "Briefing Base",
		Sections: []entity.Section{
			{ID: "S1", Name: "Primeira", Questions: []entity.Question{
				{ID: "Q1", Prompt: "Pergunta 1", Kind: entity.KindText},
				{ID: "Q2", Prompt: "Pergunta 2", Kind: entity.KindNumber},
			}},
			{ID: "S2", Name: "Segunda", Questions: []entity.Question{
				{ID: "Q3", Prompt: "Pergunta 3", Kind: entity.KindRadio, Choices: []string{"Sim", "Não"}},
			}},
		},
	}
}

func sectionIDs(tpl entity.Template) []string {
	ids := make([]string, len(tpl.Sections))
	for i, s := range tpl.Sections {
		ids[i] = s.ID
	}
	return ids
}

func TestMutationsDoNotAliasPreviousResults(t *testing.T) {
	e := New(baseTemplate())

	before, err := e.AddSection(entity.Section{ID: "S3", Name: "Terceira"})
	require.NoError(t, err)

	after, err := e.EditSection(2, SectionPatch{Name: strPtr("Renomeada")})
	require.NoError(t, err)

	assert.Equal(t, "Terceira", before.Sections[2].Name, "earlier snapshot must not see later edits")
	assert.Equal(t, "Renomeada", after.Sections[2].Name)
}

func TestSectionOps(t *testing.T) {
	e := New(baseTemplate())

	tpl, err := e.MoveSectionDown(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"S2", "S1"}, sectionIDs(tpl))

	tpl, err = e.MoveSectionUp(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, sectionIDs(tpl))

	// Moves at the edges are no-ops, not errors.
	tpl, err = e.MoveSectionUp(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, sectionIDs(tpl))

	tpl, err = e.RemoveSection(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"S2"}, sectionIDs(tpl))

	_, err = e.RemoveSection(5)
	assert.Error(t, err)
}

func TestRemovingEverySectionIsAccepted(t *testing.T) {
	// The operator is trusted: committing an empty structure is valid.
	e := New(baseTemplate())
	_, err := e.RemoveSection(0)
	require.NoError(t, err)
	tpl, err := e.RemoveSection(0)
	require.NoError(t, err)
	assert.Empty(t, tpl.Sections)
	assert.Equal(t, 0, tpl.TotalQuestions)
}

func TestQuestionOps(t *testing.T) {
	e := New(baseTemplate())

	tpl, err := e.AddQuestion(0, entity.Question{Prompt: "Nova pergunta"})
	require.NoError(t, err)
	require.Len(t, tpl.Sections[0].Questions, 3)
	added := tpl.Sections[0].Questions[2]
	assert.NotEmpty(t, added.ID, "blank ids are generated")
	assert.Equal(t, entity.KindText, added.Kind, "blank kind defaults to text")
	assert.Equal(t, 4, tpl.TotalQuestions)

	tpl, err = e.MoveQuestionUp(0, 2)
	require.NoError(t, err)
	assert.Equal(t, added.ID, tpl.Sections[0].Questions[1].ID)

	tpl, err = e.RemoveQuestion(0, 1)
	require.NoError(t, err)
	require.Len(t, tpl.Sections[0].Questions, 2)
	assert.Equal(t, []string{"Q1", "Q2"}, []string{
		tpl.Sections[0].Questions[0].ID,
		tpl.Sections[0].Questions[1].ID,
	})

	_, err = e.MoveQuestionDown(0, 9)
	assert.Error(t, err)
	_, err = e.AddQuestion(7, entity.Question{Prompt: "x"})
	assert.Error(t, err)
}

func TestEditQuestionPatchesOnlyGivenFields(t *testing.T) {
	e := New(baseTemplate())

	required := true
	kind := entity.KindSelect
	choices := []string{"A", "B"}
	tpl, err := e.EditQuestion(1, 0, QuestionPatch{
		Kind:     &kind,
		Required: &required,
		Choices:  &choices,
	})
	require.NoError(t, err)

	q := tpl.Sections[1].Questions[0]
	assert.Equal(t, "Pergunta 3", q.Prompt, "prompt untouched")
	assert.Equal(t, entity.KindSelect, q.Kind)
	assert.True(t, q.Required)
	assert.Equal(t, []string{"A", "B"}, q.Choices)

	// The caller's slice is copied, not retained.
	choices[0] = "mutated"
	assert.Equal(t, "A", e.Template().Sections[1].Questions[0].Choices[0])
}

func TestBuildOverlay(t *testing.T) {
	e := New(baseTemplate())
	b := &entity.Briefing{}

	o := e.BuildOverlay(b, 3)
	assert.Equal(t, int64(3), o.Version)
	assert.Equal(t, entity.SourcePersonalizado, o.Template.Source)
	assert.Equal(t, 3, o.Template.TotalQuestions)
}

func strPtr(s string) *string { return &s }
