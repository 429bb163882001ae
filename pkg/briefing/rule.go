package briefing

import (
	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

// ResolveRule evaluates a dependency rule against the current answers.
// A nil rule always resolves visible. For a rule-bearing item an absent or
// empty referenced answer always resolves to not-visible, for both shapes.
func ResolveRule(rule *entity.DependencyRule, answers entity.AnswerStore) bool {
	if rule == nil {
		return true
	}

	answer, ok := answers[rule.Ref]
	if !ok || answer.Empty() {
		return false
	}

	switch rule.Kind() {
	case entity.RuleAllow:
		for _, allowed := range rule.Allow {
			if answer.Matches(allowed) {
				return true
			}
		}
		return false
	case entity.RuleDeny:
		for _, denied := range rule.Deny {
			if answer.Matches(denied) {
				return false
			}
		}
		return true
	}
	return false
}
