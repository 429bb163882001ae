package entity

// RuleKind discriminates the two dependency rule shapes.
type RuleKind string

const (
	// RuleDeny is the legacy form: the referenced answer suppresses
	// visibility when it matches one of the listed values.
	RuleDeny RuleKind = "deny"
	// RuleAllow is the canonical form: the referenced answer must match one
	// of the listed values for the item to be visible.
	RuleAllow RuleKind = "allow"
)

// DependencyRule ties a section or question's visibility to another
// question's current answer. Exactly one of Deny/Allow is populated; rules
// never chain more than one hop.
type DependencyRule struct {
	Ref   string   `json:"perguntaId"`
	Deny  []string `json:"valoresOcultar,omitempty"`
	Allow []string `json:"valoresMostrar,omitempty"`
}

func (r *DependencyRule) Kind() RuleKind {
	if r != nil && len(r.Allow) > 0 {
		return RuleAllow
	}
	return RuleDeny
}

func (r *DependencyRule) Clone() *DependencyRule {
	if r == nil {
		return nil
	}
	out := &DependencyRule{Ref: r.Ref}
	if r.Deny != nil {
		out.Deny = append([]string(nil), r.Deny...)
	}
	if r.Allow != nil {
		out.Allow = append([]string(nil), r.Allow...)
	}
	return out
}
