package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meescheck/meescheck/internal/model"
)

// ValidateStep checks the answers against one step of a wizard. The
// returned map is empty iff every required field is set and every set
// field (required or optional) is inside its domain. Pure and re-entrant:
// safe to call repeatedly with partial input.
func ValidateStep(w Wizard, step int, answers model.AnswerSet) map[string]string {
	errs := make(map[string]string)
	if step < 0 || step >= len(w.Steps) {
		return errs
	}

	s := w.Steps[step]
	for _, name := range s.Required {
		value, ok := answers.Get(name)
		if !ok {
			errs[name] = fmt.Sprintf("%s is required", Fields[name].Label)
			continue
		}
		if msg := ValidateValue(name, value); msg != "" {
			errs[name] = msg
		}
	}
	for _, name := range s.Optional {
		if value, ok := answers.Get(name); ok {
			if msg := ValidateValue(name, value); msg != "" {
				errs[name] = msg
			}
		}
	}
	return errs
}

// StepComplete reports whether the step passes validation.
func StepComplete(w Wizard, step int, answers model.AnswerSet) bool {
	return len(ValidateStep(w, step, answers)) == 0
}

// ValidateValue checks a single value against its field's domain. Returns
// an empty string when valid. Unknown field names are rejected so a typo
// cannot slip through as "valid".
func ValidateValue(name, value string) string {
	f, ok := Fields[name]
	if !ok {
		return fmt.Sprintf("unknown field %q", name)
	}

	switch f.Kind {
	case DomainEnum:
		if !inSet(f.Allowed, value) {
			return fmt.Sprintf("%s must be one of the listed options", f.Label)
		}
	case DomainInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Sprintf("%s must be a whole number", f.Label)
		}
		if n < f.Min || n > f.Max {
			return fmt.Sprintf("%s must be between %d and %d", f.Label, f.Min, f.Max)
		}
	case DomainBool:
		if value != "true" && value != "false" {
			return fmt.Sprintf("%s must be yes or no", f.Label)
		}
	case DomainEnumList:
		for _, v := range splitList(value) {
			if !inSet(f.Allowed, v) {
				return fmt.Sprintf("%s contains an unrecognised option", f.Label)
			}
		}
	}
	return ""
}

func inSet(allowed []string, value string) bool {
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}
