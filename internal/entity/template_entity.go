package entity

import (
	"time"

	"github.com/google/uuid"
)

// TemplateSource tells where a resolved template came from.
type TemplateSource string

const (
	SourceCatalogo      TemplateSource = "catalogo"
	SourcePersonalizado TemplateSource = "personalizado"
)

// QuestionKind is the closed set of input kinds a question can render as.
type QuestionKind string

const (
	KindText        QuestionKind = "text"
	KindLongText    QuestionKind = "longtext"
	KindSelect      QuestionKind = "select"
	KindMultiSelect QuestionKind = "multiselect"
	KindNumber      QuestionKind = "number"
	KindCurrency    QuestionKind = "currency"
	KindDate        QuestionKind = "date"
	KindRadio       QuestionKind = "radio"
	KindFile        QuestionKind = "file"
)

type Question struct {
	ID          string          `json:"id"`
	Prompt      string          `json:"pergunta"`
	Kind        QuestionKind    `json:"tipo"`
	Required    bool            `json:"obrigatoria"`
	Choices     []string        `json:"opcoes,omitempty"`
	Rule        *DependencyRule `json:"dependeDe,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
	MaxLength   int             `json:"maxLength,omitempty"`
}

type Section struct {
	ID          string          `json:"id"`
	Name        string          `json:"nome"`
	Description string          `json:"descricao,omitempty"`
	Questions   []Question      `json:"perguntas"`
	Rule        *DependencyRule `json:"dependeDe,omitempty"`
	Required    bool            `json:"obrigatoria"`
}

// TemplateTags carries the classification triple a template was resolved for.
type TemplateTags struct {
	Disciplina string `json:"disciplina"`
	Area       string `json:"area"`
	Tipologia  string `json:"tipologia"`
}

// Template is the full structure of a briefing questionnaire. It is a plain
// JSON document: catalog entries, personalization overlays and the working
// copy held by the editor all share this shape.
type Template struct {
	ID             string         `json:"id"`
	Name           string         `json:"nome"`
	Description    string         `json:"descricao,omitempty"`
	Sections       []Section      `json:"secoes"`
	TotalQuestions int            `json:"totalPerguntas"`
	Tags           TemplateTags   `json:"tags"`
	Source         TemplateSource `json:"origem"`
	CreatedAt      time.Time      `json:"criadoEm"`
	UpdatedAt      *time.Time     `json:"atualizadoEm,omitempty"`
}

// CountQuestions recomputes the declared total from the actual sections.
func (t *Template) CountQuestions() int {
	total := 0
	for i := range t.Sections {
		total += len(t.Sections[i].Questions)
	}
	return total
}

// Clone returns a deep copy. The editor hands out clones so no two mutation
// calls ever alias the same backing arrays.
func (t Template) Clone() Template {
	out := t
	out.Sections = cloneSections(t.Sections)
	return out
}

func cloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	out := make([]Section, len(sections))
	for i, s := range sections {
		cs := s
		cs.Rule = s.Rule.Clone()
		cs.Questions = make([]Question, len(s.Questions))
		for j, q := range s.Questions {
			cq := q
			cq.Rule = q.Rule.Clone()
			if q.Choices != nil {
				cq.Choices = append([]string(nil), q.Choices...)
			}
			cs.Questions[j] = cq
		}
		out[i] = cs
	}
	return out
}

// Briefing is one questionnaire session tied to a client/project.
type Briefing struct {
	Id         uuid.UUID
	ClienteId  uuid.UUID
	ProjetoId  uuid.UUID
	Nome       string
	Disciplina string
	Area       string
	Tipologia  string
	Status     BriefingStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
}

type BriefingStatus string

const (
	BriefingRascunho    BriefingStatus = "rascunho"
	BriefingEmAndamento BriefingStatus = "em_andamento"
	BriefingConcluido   BriefingStatus = "concluido"
)
