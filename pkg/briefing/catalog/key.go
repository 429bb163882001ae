package catalog

import (
	"strings"
)

// Key is the classification triple a briefing template is cataloged under.
type Key struct {
	Disciplina string
	Area       string
	Tipologia  string
}

func (k Key) String() string {
	return k.Disciplina + "/" + k.Area + "/" + k.Tipologia
}

const (
	DefaultDisciplina = "arquitetura"
	DefaultArea       = "residencial"
	DefaultTipologia  = "unifamiliar"
)

// GlobalDefaultKey is the last entry of every fallback chain. The catalog is
// seeded so this key always resolves; a miss here is a configuration error.
var GlobalDefaultKey = Key{
	Disciplina: DefaultDisciplina,
	Area:       DefaultArea,
	Tipologia:  DefaultTipologia,
}

// aliases collapses the spelling variants that reach us from older clients
// onto the canonical catalog vocabulary.
var aliases = map[string]string{
	"arq":                "arquitetura",
	"arquitetonico":      "arquitetura",
	"eng":                "estrutural",
	"engenharia":         "estrutural",
	"estrutura":          "estrutural",
	"hidraulica":         "instalacoes",
	"eletrica":           "instalacoes",
	"casa":               "unifamiliar",
	"apartamento":        "multifamiliar",
	"predio":             "multifamiliar",
	"corporativo":        "escritorio",
	"escritorios":        "escritorio",
	"industria":          "galpao",
	"residencia":         "residencial",
	"comercio":           "comercial",
	"design-interiores":  "interiores",
	"design_interiores":  "interiores",
}

func normalize(value, fallback string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return fallback
	}
	if canonical, ok := aliases[v]; ok {
		return canonical
	}
	return v
}

// Resolve maps a raw classification triple through the decision table onto a
// canonical catalog key. Blank fields collapse to the defaults.
func Resolve(disciplina, area, tipologia string) Key {
	return Key{
		Disciplina: normalize(disciplina, DefaultDisciplina),
		Area:       normalize(area, DefaultArea),
		Tipologia:  normalize(tipologia, DefaultTipologia),
	}
}

// FallbackChain lists the keys to try in order when the exact key misses:
// same discipline with the default area and typology, then the global
// default template.
func FallbackChain(key Key) []Key {
	chain := []Key{key}
	sameDiscipline := Key{
		Disciplina: key.Disciplina,
		Area:       DefaultArea,
		Tipologia:  DefaultTipologia,
	}
	if sameDiscipline != key {
		chain = append(chain, sameDiscipline)
	}
	if GlobalDefaultKey != key && GlobalDefaultKey != sameDiscipline {
		chain = append(chain, GlobalDefaultKey)
	}
	return chain
}
