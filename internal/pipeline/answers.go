package pipeline

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/meescheck/meescheck/internal/model"
	"github.com/meescheck/meescheck/internal/schema"
	"github.com/meescheck/meescheck/internal/wizard"
)

// LoadAnswers reads an exemption answer file (YAML, field name to value).
// Multi-select fields take a YAML list.
func LoadAnswers(path string) (model.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}

	answers := model.NewAnswerSet()
	for name, value := range raw {
		switch v := value.(type) {
		case []interface{}:
			var items []string
			for _, item := range v {
				items = append(items, scalarString(item))
			}
			answers.SetList(name, items)
		default:
			answers.Set(name, scalarString(v))
		}
	}
	return answers, nil
}

func scalarString(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.Itoa(int(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ReplayAnswers drives the exemption wizard through every step with the
// loaded answers, so the answer file passes exactly the validation an
// interactive user would. Returns the submitted answer set or the field
// errors of the first step that blocks.
func ReplayAnswers(answers model.AnswerSet) (model.AnswerSet, error) {
	c := wizard.New(schema.ExemptionWizard)

	for name, value := range answers {
		c.Apply(wizard.SetField{Name: name, Value: value})
	}
	for range schema.ExemptionWizard.Steps {
		c.Apply(wizard.Next{})
	}

	final, ok := c.Submitted()
	if !ok {
		errs := c.FieldErrors()
		names := make([]string, 0, len(errs))
		for name := range errs {
			names = append(names, name)
		}
		sort.Strings(names)
		msg := "answers incomplete:"
		for _, name := range names {
			msg += fmt.Sprintf("\n  %s: %s", name, errs[name])
		}
		return nil, fmt.Errorf("%s", msg)
	}
	return final, nil
}
