package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

// StaticCatalog serves the built-in catalog entries from memory. It backs the
// seeder and is the fallback catalog when no database-backed catalog is
// wired (tests, CLI tooling).
type StaticCatalog struct {
	mu      sync.RWMutex
	entries map[Key]entity.Template
}

func NewStaticCatalog() *StaticCatalog {
	c := &StaticCatalog{entries: make(map[Key]entity.Template)}
	for key, tpl := range builtinTemplates() {
		c.entries[key] = tpl
	}
	return c
}

func (c *StaticCatalog) Get(_ context.Context, key Key) (*entity.Template, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tpl, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	out := tpl.Clone()
	return &out, nil
}

// Put registers or replaces an entry. Used by the seeder and by tests.
func (c *StaticCatalog) Put(key Key, tpl entity.Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = tpl.Clone()
}

// Keys lists every cataloged classification key.
func (c *StaticCatalog) Keys() []Key {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]Key, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

func builtinTemplates() map[Key]entity.Template {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	residencialUnifamiliar := entity.Template{
		ID:   "tpl-residencial-unifamiliar",
		Name: "Briefing Residencial Unifamiliar",
		Tags: entity.TemplateTags{Disciplina: "arquitetura", Area: "residencial", Tipologia: "unifamiliar"},
		Sections: []entity.Section{
			{
				ID:   "dados-gerais",
				Name: "Dados Gerais",
				Questions: []entity.Question{
					{ID: "DG01", Prompt: "Qual o nome do projeto?", Kind: entity.KindText, Required: true},
					{ID: "DG02", Prompt: "Quantas pessoas vão morar na residência?", Kind: entity.KindNumber, Required: true},
					{ID: "DG03", Prompt: "Qual o orçamento total disponível?", Kind: entity.KindCurrency, Required: true},
					{ID: "DG04", Prompt: "Qual o prazo desejado para entrega?", Kind: entity.KindDate},
				},
			},
			{
				ID:   "terreno",
				Name: "Terreno",
				Questions: []entity.Question{
					{ID: "TE01", Prompt: "Já possui terreno?", Kind: entity.KindRadio, Required: true, Choices: []string{"Sim", "Não"}},
					{ID: "TE02", Prompt: "Qual a metragem do terreno (m²)?", Kind: entity.KindNumber,
						Rule: &entity.DependencyRule{Ref: "TE01", Allow: []string{"Sim"}}},
					{ID: "TE03", Prompt: "O terreno possui desnível?", Kind: entity.KindRadio, Choices: []string{"Sim", "Não"},
						Rule: &entity.DependencyRule{Ref: "TE01", Allow: []string{"Sim"}}},
					{ID: "TE04", Prompt: "Anexe a matrícula ou planta do terreno", Kind: entity.KindFile,
						Rule: &entity.DependencyRule{Ref: "TE01", Allow: []string{"Sim"}}},
				},
			},
			{
				ID:   "programa",
				Name: "Programa de Necessidades",
				Questions: []entity.Question{
					{ID: "PR01", Prompt: "Quantos quartos?", Kind: entity.KindNumber, Required: true},
					{ID: "PR02", Prompt: "Quantas suítes?", Kind: entity.KindNumber},
					{ID: "PR03", Prompt: "Ambientes desejados", Kind: entity.KindMultiSelect,
						Choices: []string{"Escritório", "Varanda gourmet", "Piscina", "Academia", "Adega"}},
					{ID: "PR04", Prompt: "Descreva a rotina da família", Kind: entity.KindLongText},
				},
			},
			{
				ID:   "piscina",
				Name: "Piscina e Área Externa",
				Rule: &entity.DependencyRule{Ref: "PR03", Allow: []string{"Piscina"}},
				Questions: []entity.Question{
					{ID: "PI01", Prompt: "Qual o tipo de piscina?", Kind: entity.KindSelect,
						Choices: []string{"Alvenaria", "Vinil", "Fibra"}},
					{ID: "PI02", Prompt: "Deseja aquecimento?", Kind: entity.KindRadio, Choices: []string{"Sim", "Não"}},
				},
			},
		},
		Source:    entity.SourceCatalogo,
		CreatedAt: createdAt,
	}

	residencialMultifamiliar := entity.Template{
		ID:   "tpl-residencial-multifamiliar",
		Name: "Briefing Residencial Multifamiliar",
		Tags: entity.TemplateTags{Disciplina: "arquitetura", Area: "residencial", Tipologia: "multifamiliar"},
		Sections: []entity.Section{
			{
				ID:   "empreendimento",
				Name: "Empreendimento",
				Questions: []entity.Question{
					{ID: "EM01", Prompt: "Qual o nome do empreendimento?", Kind: entity.KindText, Required: true},
					{ID: "EM02", Prompt: "Quantas unidades estão previstas?", Kind: entity.KindNumber, Required: true},
					{ID: "EM03", Prompt: "Quantos pavimentos?", Kind: entity.KindNumber, Required: true},
					{ID: "EM04", Prompt: "Haverá área de lazer condominial?", Kind: entity.KindRadio, Choices: []string{"Sim", "Não"}},
				},
			},
			{
				ID:   "lazer",
				Name: "Área de Lazer",
				Rule: &entity.DependencyRule{Ref: "EM04", Deny: []string{"Não"}},
				Questions: []entity.Question{
					{ID: "LA01", Prompt: "Equipamentos de lazer desejados", Kind: entity.KindMultiSelect,
						Choices: []string{"Piscina", "Salão de festas", "Playground", "Quadra", "Coworking"}},
					{ID: "LA02", Prompt: "Observações sobre o lazer", Kind: entity.KindLongText},
				},
			},
		},
		Source:    entity.SourceCatalogo,
		CreatedAt: createdAt,
	}

	comercialEscritorio := entity.Template{
		ID:   "tpl-comercial-escritorio",
		Name: "Briefing Comercial - Escritório",
		Tags: entity.TemplateTags{Disciplina: "arquitetura", Area: "comercial", Tipologia: "escritorio"},
		Sections: []entity.Section{
			{
				ID:   "empresa",
				Name: "Sobre a Empresa",
				Questions: []entity.Question{
					{ID: "CO01", Prompt: "Qual o ramo de atuação da empresa?", Kind: entity.KindText, Required: true},
					{ID: "CO02", Prompt: "Quantos colaboradores ocuparão o espaço?", Kind: entity.KindNumber, Required: true},
					{ID: "CO03", Prompt: "O escritório recebe clientes?", Kind: entity.KindRadio, Required: true, Choices: []string{"Sim", "Não"}},
				},
			},
			{
				ID:   "atendimento",
				Name: "Atendimento ao Cliente",
				Rule: &entity.DependencyRule{Ref: "CO03", Allow: []string{"Sim"}},
				Questions: []entity.Question{
					{ID: "AT01", Prompt: "Quantas salas de reunião são necessárias?", Kind: entity.KindNumber},
					{ID: "AT02", Prompt: "Descreva o fluxo de recepção desejado", Kind: entity.KindLongText},
				},
			},
		},
		Source:    entity.SourceCatalogo,
		CreatedAt: createdAt,
	}

	estruturalDefault := entity.Template{
		ID:   "tpl-estrutural-residencial",
		Name: "Briefing Estrutural Residencial",
		Tags: entity.TemplateTags{Disciplina: "estrutural", Area: "residencial", Tipologia: "unifamiliar"},
		Sections: []entity.Section{
			{
				ID:   "sistema",
				Name: "Sistema Estrutural",
				Questions: []entity.Question{
					{ID: "ES01", Prompt: "Sistema estrutural pretendido", Kind: entity.KindSelect, Required: true,
						Choices: []string{"Concreto armado", "Metálica", "Madeira", "Alvenaria estrutural"}},
					{ID: "ES02", Prompt: "O projeto arquitetônico já está concluído?", Kind: entity.KindRadio, Required: true, Choices: []string{"Sim", "Não"}},
					{ID: "ES03", Prompt: "Anexe o projeto arquitetônico", Kind: entity.KindFile,
						Rule: &entity.DependencyRule{Ref: "ES02", Allow: []string{"Sim"}}},
					{ID: "ES04", Prompt: "Existe sondagem do solo?", Kind: entity.KindRadio, Choices: []string{"Sim", "Não"}},
				},
			},
		},
		Source:    entity.SourceCatalogo,
		CreatedAt: createdAt,
	}

	templates := map[Key]entity.Template{
		{Disciplina: "arquitetura", Area: "residencial", Tipologia: "unifamiliar"}:   residencialUnifamiliar,
		{Disciplina: "arquitetura", Area: "residencial", Tipologia: "multifamiliar"}: residencialMultifamiliar,
		{Disciplina: "arquitetura", Area: "comercial", Tipologia: "escritorio"}:      comercialEscritorio,
		{Disciplina: "estrutural", Area: "residencial", Tipologia: "unifamiliar"}:    estruturalDefault,
	}
	for key, tpl := range templates {
		tpl.TotalQuestions = tpl.CountQuestions()
		templates[key] = tpl
	}
	return templates
}
