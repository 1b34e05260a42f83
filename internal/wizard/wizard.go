package wizard

import (
	"github.com/meescheck/meescheck/internal/model"
	"github.com/meescheck/meescheck/internal/schema"
)

// Command is a discrete state transition applied by the reducer. Keeping
// transitions as values (rather than inline callbacks) keeps the machine's
// transition table explicit and unit-testable.
type Command interface {
	isCommand()
}

// Next advances to the following step if the current one validates, or
// submits when already on the last step.
type Next struct{}

// Back returns to the previous step without re-validating the one being
// left.
type Back struct{}

// JumpTo navigates directly to an earlier, already-visited step.
type JumpTo struct {
	Step int
}

// SetField records a single answer.
type SetField struct {
	Name  string
	Value string
}

// SetFieldList records a multi-select answer.
type SetFieldList struct {
	Name   string
	Values []string
}

// MergeExtraction merges an extraction result into the answers. The
// Generation must match the latest BeginUpload call or the result is
// discarded as stale.
type MergeExtraction struct {
	Result     model.ExtractionResult
	Generation uint64
}

func (Next) isCommand()            {}
func (Back) isCommand()            {}
func (JumpTo) isCommand()          {}
func (SetField) isCommand()        {}
func (SetFieldList) isCommand()    {}
func (MergeExtraction) isCommand() {}

// Controller is a finite state machine over the ordered steps of one
// wizard definition. Each flow owns exactly one controller; the two flows
// (certificate analysis, exemption checker) never share state.
type Controller struct {
	def         schema.Wizard
	step        int
	answers     model.AnswerSet
	fieldErrors map[string]string

	uploadGen uint64 // Latest requested upload generation

	submitted   bool
	finalAnswer model.AnswerSet
}

// New creates a controller positioned on the first step with no answers.
func New(def schema.Wizard) *Controller {
	return &Controller{
		def:         def,
		answers:     model.NewAnswerSet(),
		fieldErrors: make(map[string]string),
	}
}

// Step returns the current step index.
func (c *Controller) Step() int {
	return c.step
}

// StepName returns the current step's name.
func (c *Controller) StepName() string {
	return c.def.Steps[c.step].Name
}

// Answers returns a copy of the accumulated answers. State is only ever
// mutated through Apply.
func (c *Controller) Answers() model.AnswerSet {
	return c.answers.Clone()
}

// FieldErrors returns the validation errors from the last blocked Next.
func (c *Controller) FieldErrors() map[string]string {
	out := make(map[string]string, len(c.fieldErrors))
	for k, v := range c.fieldErrors {
		out[k] = v
	}
	return out
}

// Submitted returns the completed answer set once the final step has
// passed validation, and whether submission has happened.
func (c *Controller) Submitted() (model.AnswerSet, bool) {
	if !c.submitted {
		return nil, false
	}
	return c.finalAnswer.Clone(), true
}

// BeginUpload registers a new upload attempt and returns its generation.
// A later upload supersedes any still-pending extraction: results arriving
// with an older generation are discarded by MergeExtraction.
func (c *Controller) BeginUpload() uint64 {
	c.uploadGen++
	return c.uploadGen
}

// Apply executes one command against the state machine. All failures are
// locally recoverable: an invalid transition leaves the state unchanged
// (validation failures additionally populate FieldErrors).
func (c *Controller) Apply(cmd Command) {
	switch cmd := cmd.(type) {
	case Next:
		c.next()
	case Back:
		if c.step > 0 {
			c.step--
			c.fieldErrors = make(map[string]string)
		}
	case JumpTo:
		// Cannot skip ahead to an unvalidated step.
		if cmd.Step >= 0 && cmd.Step < c.step {
			c.step = cmd.Step
			c.fieldErrors = make(map[string]string)
		}
	case SetField:
		c.answers.Set(cmd.Name, cmd.Value)
		delete(c.fieldErrors, cmd.Name)
	case SetFieldList:
		c.answers.SetList(cmd.Name, cmd.Values)
		delete(c.fieldErrors, cmd.Name)
	case MergeExtraction:
		c.mergeExtraction(cmd)
	}
}

func (c *Controller) next() {
	if c.submitted {
		return
	}

	current := c.def.Steps[c.step]
	if !current.Intro {
		errs := schema.ValidateStep(c.def, c.step, c.answers)
		if len(errs) > 0 {
			c.fieldErrors = errs
			return
		}
	}
	c.fieldErrors = make(map[string]string)

	if c.step == len(c.def.Steps)-1 {
		// Terminal action: emit the completed answer set exactly once.
		c.submitted = true
		c.finalAnswer = c.answers.Clone()
		return
	}
	c.step++
}

func (c *Controller) mergeExtraction(cmd MergeExtraction) {
	// A stale result must never overwrite a newer upload or the user's
	// manual edits.
	if cmd.Generation != c.uploadGen {
		return
	}

	// Only fields present in the result are overwritten; everything else
	// is left untouched. Merging the same result twice is a no-op the
	// second time.
	c.answers.Merge(cmd.Result.Fields)
	for name := range cmd.Result.Fields {
		delete(c.fieldErrors, name)
	}

	// Low confidence never triggers an automatic advance; the user can
	// re-upload or continue manually.
	if c.def.Steps[c.step].Intro && cmd.Result.Confidence != model.ConfidenceLow {
		c.step++
	}
}
