package editor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

// Editor holds the working copy of a template under structural edition.
// Every mutation is applied to the working copy and returned as a fresh
// value: no two calls ever alias the same backing arrays, so callers can
// hold onto intermediate states safely.
//
// The editor deliberately accepts states a stricter tool would reject —
// zero sections, sections without required questions. The operator is
// trusted; validation gaps are by contract, not oversight.
type Editor struct {
	working entity.Template
}

func New(tpl entity.Template) *Editor {
	return &Editor{working: tpl.Clone()}
}

// Template returns a copy of the current working state.
func (e *Editor) Template() entity.Template {
	return e.working.Clone()
}

func (e *Editor) snapshot() entity.Template {
	e.working.TotalQuestions = e.working.CountQuestions()
	now := time.Now()
	e.working.UpdatedAt = &now
	return e.working.Clone()
}

func (e *Editor) sectionAt(index int) (*entity.Section, error) {
	if index < 0 || index >= len(e.working.Sections) {
		return nil, fmt.Errorf("section index %d out of range (have %d)", index, len(e.working.Sections))
	}
	return &e.working.Sections[index], nil
}

// AddSection appends a section. A blank id gets a generated one.
func (e *Editor) AddSection(section entity.Section) (entity.Template, error) {
	if section.ID == "" {
		section.ID = "secao-" + uuid.NewString()[:8]
	}
	if section.Questions == nil {
		section.Questions = []entity.Question{}
	}
	e.working.Sections = append(e.working.Sections, section)
	return e.snapshot(), nil
}

func (e *Editor) RemoveSection(index int) (entity.Template, error) {
	if _, err := e.sectionAt(index); err != nil {
		return entity.Template{}, err
	}
	e.working.Sections = append(e.working.Sections[:index], e.working.Sections[index+1:]...)
	return e.snapshot(), nil
}

func (e *Editor) MoveSectionUp(index int) (entity.Template, error) {
	if _, err := e.sectionAt(index); err != nil {
		return entity.Template{}, err
	}
	if index == 0 {
		return e.snapshot(), nil
	}
	s := e.working.Sections
	s[index-1], s[index] = s[index], s[index-1]
	return e.snapshot(), nil
}

func (e *Editor) MoveSectionDown(index int) (entity.Template, error) {
	if _, err := e.sectionAt(index); err != nil {
		return entity.Template{}, err
	}
	if index == len(e.working.Sections)-1 {
		return e.snapshot(), nil
	}
	s := e.working.Sections
	s[index], s[index+1] = s[index+1], s[index]
	return e.snapshot(), nil
}

// SectionPatch carries the editable fields of a section. Nil means "leave
// unchanged".
type SectionPatch struct {
	Name        *string
	Description *string
}

func (e *Editor) EditSection(index int, patch SectionPatch) (entity.Template, error) {
	section, err := e.sectionAt(index)
	if err != nil {
		return entity.Template{}, err
	}
	if patch.Name != nil {
		section.Name = *patch.Name
	}
	if patch.Description != nil {
		section.Description = *patch.Description
	}
	return e.snapshot(), nil
}

func (e *Editor) questionAt(sectionIndex, questionIndex int) (*entity.Question, error) {
	section, err := e.sectionAt(sectionIndex)
	if err != nil {
		return nil, err
	}
	if questionIndex < 0 || questionIndex >= len(section.Questions) {
		return nil, fmt.Errorf("question index %d out of range in section %s (have %d)",
			questionIndex, section.ID, len(section.Questions))
	}
	return &section.Questions[questionIndex], nil
}

// AddQuestion appends a question to a section. A blank id gets a generated
// one.
func (e *Editor) AddQuestion(sectionIndex int, q entity.Question) (entity.Template, error) {
	section, err := e.sectionAt(sectionIndex)
	if err != nil {
		return entity.Template{}, err
	}
	if q.ID == "" {
		q.ID = "pergunta-" + uuid.NewString()[:8]
	}
	if q.Kind == "" {
		q.Kind = entity.KindText
	}
	section.Questions = append(section.Questions, q)
	return e.snapshot(), nil
}

// RemoveQuestion drops a question from its section. Answers already recorded
// for the removed question are not touched: they stay orphaned in the answer
// store and come back if the question is ever re-added under the same id.
func (e *Editor) RemoveQuestion(sectionIndex, questionIndex int) (entity.Template, error) {
	section, err := e.sectionAt(sectionIndex)
	if err != nil {
		return entity.Template{}, err
	}
	if _, err := e.questionAt(sectionIndex, questionIndex); err != nil {
		return entity.Template{}, err
	}
	section.Questions = append(section.Questions[:questionIndex], section.Questions[questionIndex+1:]...)
	return e.snapshot(), nil
}

func (e *Editor) MoveQuestionUp(sectionIndex, questionIndex int) (entity.Template, error) {
	section, err := e.sectionAt(sectionIndex)
	if err != nil {
		return entity.Template{}, err
	}
	if _, err := e.questionAt(sectionIndex, questionIndex); err != nil {
		return entity.Template{}, err
	}
	if questionIndex == 0 {
		return e.snapshot(), nil
	}
	q := section.Questions
	q[questionIndex-1], q[questionIndex] = q[questionIndex], q[questionIndex-1]
	return e.snapshot(), nil
}

func (e *Editor) MoveQuestionDown(sectionIndex, questionIndex int) (entity.Template, error) {
	section, err := e.sectionAt(sectionIndex)
	if err != nil {
		return entity.Template{}, err
	}
	if _, err := e.questionAt(sectionIndex, questionIndex); err != nil {
		return entity.Template{}, err
	}
	if questionIndex == len(section.Questions)-1 {
		return e.snapshot(), nil
	}
	q := section.Questions
	q[questionIndex], q[questionIndex+1] = q[questionIndex+1], q[questionIndex]
	return e.snapshot(), nil
}

// QuestionPatch carries the editable fields of a question. Nil means "leave
// unchanged".
type QuestionPatch struct {
	Prompt   *string
	Kind     *entity.QuestionKind
	Required *bool
	Choices  *[]string
}

func (e *Editor) EditQuestion(sectionIndex, questionIndex int, patch QuestionPatch) (entity.Template, error) {
	q, err := e.questionAt(sectionIndex, questionIndex)
	if err != nil {
		return entity.Template{}, err
	}
	if patch.Prompt != nil {
		q.Prompt = *patch.Prompt
	}
	if patch.Kind != nil {
		q.Kind = *patch.Kind
	}
	if patch.Required != nil {
		q.Required = *patch.Required
	}
	if patch.Choices != nil {
		q.Choices = append([]string(nil), (*patch.Choices)...)
	}
	return e.snapshot(), nil
}

// BuildOverlay wraps the working copy as a personalization overlay for the
// given briefing instance.
func (e *Editor) BuildOverlay(b *entity.Briefing, version int64) entity.Overlay {
	tpl := e.snapshot()
	tpl.Source = entity.SourcePersonalizado
	return entity.Overlay{
		BriefingId: b.Id,
		ClienteId:  b.ClienteId,
		ProjetoId:  b.ProjetoId,
		Template:   tpl,
		Version:    version,
		CreatedAt:  time.Now(),
	}
}
