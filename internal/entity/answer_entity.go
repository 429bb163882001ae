package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnswerKind tags the concrete type held by an AnswerValue.
type AnswerKind string

const (
	AnswerString AnswerKind = "string"
	AnswerList   AnswerKind = "list"
	AnswerNumber AnswerKind = "number"
	AnswerBool   AnswerKind = "bool"
)

// AnswerValue is the small union of values an answer can hold: a string, a
// string list (multiselect), a number or a boolean. The zero value is an
// empty string answer.
type AnswerValue struct {
	kind    AnswerKind
	str     string
	list    []string
	num     float64
	boolean bool
}

func StringAnswer(s string) AnswerValue {
	return AnswerValue{kind: AnswerString, str: s}
}

func ListAnswer(items []string) AnswerValue {
	return AnswerValue{kind: AnswerList, list: append([]string(nil), items...)}
}

func NumberAnswer(n float64) AnswerValue {
	return AnswerValue{kind: AnswerNumber, num: n}
}

func BoolAnswer(b bool) AnswerValue {
	return AnswerValue{kind: AnswerBool, boolean: b}
}

func (v AnswerValue) Kind() AnswerKind {
	if v.kind == "" {
		return AnswerString
	}
	return v.kind
}

// Empty reports whether the answer counts as "not given". Whitespace-only
// strings and empty lists are empty; numbers and booleans never are.
func (v AnswerValue) Empty() bool {
	switch v.Kind() {
	case AnswerString:
		return strings.TrimSpace(v.str) == ""
	case AnswerList:
		return len(v.list) == 0
	default:
		return false
	}
}

// Matches reports whether the answer matches a candidate value from a
// dependency rule list. List answers match on membership.
func (v AnswerValue) Matches(candidate string) bool {
	switch v.Kind() {
	case AnswerString:
		return v.str == candidate
	case AnswerList:
		for _, item := range v.list {
			if item == candidate {
				return true
			}
		}
		return false
	case AnswerNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64) == candidate
	case AnswerBool:
		if v.boolean {
			return candidate == "true" || candidate == "Sim"
		}
		return candidate == "false" || candidate == "Não"
	}
	return false
}

func (v AnswerValue) String() string {
	switch v.Kind() {
	case AnswerString:
		return v.str
	case AnswerList:
		return strings.Join(v.list, ", ")
	case AnswerNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case AnswerBool:
		return strconv.FormatBool(v.boolean)
	}
	return ""
}

func (v AnswerValue) List() []string {
	return append([]string(nil), v.list...)
}

func (v AnswerValue) Number() float64 { return v.num }
func (v AnswerValue) Bool() bool      { return v.boolean }

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind() {
	case AnswerString:
		return json.Marshal(v.str)
	case AnswerList:
		if v.list == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.list)
	case AnswerNumber:
		return json.Marshal(v.num)
	case AnswerBool:
		return json.Marshal(v.boolean)
	}
	return json.Marshal("")
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*v = StringAnswer("")
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringAnswer(s)
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*v = ListAnswer(items)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolAnswer(b)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported answer value %s: %w", trimmed, err)
		}
		*v = NumberAnswer(n)
	}
	return nil
}

// AnswerStore maps question ids to their current answers. It is the single
// source of truth the evaluator, the progress calculator and the persistence
// pipeline all read from.
type AnswerStore map[string]AnswerValue

func (s AnswerStore) Clone() AnswerStore {
	out := make(AnswerStore, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Answered reports whether the question has a non-empty answer.
func (s AnswerStore) Answered(questionID string) bool {
	v, ok := s[questionID]
	return ok && !v.Empty()
}
