package model

import (
	"sort"
	"strings"
)

// AnswerSet maps field names to values accumulated across wizard steps.
// A field is set iff its key is present; an empty string is never stored,
// so presence and value cannot be conflated downstream.
type AnswerSet map[string]string

// listSeparator joins multi-select values into a canonical scalar form.
const listSeparator = ","

// NewAnswerSet creates an empty answer set.
func NewAnswerSet() AnswerSet {
	return make(AnswerSet)
}

// Get returns the value for a field and whether it is set.
func (a AnswerSet) Get(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// Set stores a scalar value. Setting an empty value clears the field.
func (a AnswerSet) Set(name, value string) {
	if value == "" {
		delete(a, name)
		return
	}
	a[name] = value
}

// GetList returns a multi-select field's values. An unset field yields nil.
func (a AnswerSet) GetList(name string) []string {
	v, ok := a[name]
	if !ok || v == "" {
		return nil
	}
	return strings.Split(v, listSeparator)
}

// SetList stores a multi-select field in canonical form (sorted, deduped),
// so storing the same logical set twice yields an identical AnswerSet.
func (a AnswerSet) SetList(name string, values []string) {
	seen := make(map[string]bool, len(values))
	var canon []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		canon = append(canon, v)
	}
	if len(canon) == 0 {
		delete(a, name)
		return
	}
	sort.Strings(canon)
	a[name] = strings.Join(canon, listSeparator)
}

// Has reports whether the multi-select field contains the given value.
func (a AnswerSet) Has(name, value string) bool {
	for _, v := range a.GetList(name) {
		if v == value {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the answer set.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Merge overwrites only the fields present in other, leaving everything
// else untouched. Merging the same set twice is idempotent.
func (a AnswerSet) Merge(other AnswerSet) {
	for k, v := range other {
		a[k] = v
	}
}

// Equal reports whether two answer sets hold exactly the same fields.
func (a AnswerSet) Equal(other AnswerSet) bool {
	if len(a) != len(other) {
		return false
	}
	for k, v := range a {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
