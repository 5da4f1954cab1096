// Package script describes the ordered dialogue a Player narrates.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// Step is one line of dialogue. When RequiresAnswer is set the player waits
// for a spoken answer after narrating Text.
type Step struct {
	Text           string `yaml:"text" json:"text" jsonschema:"minLength=1"`
	RequiresAnswer bool   `yaml:"requires_answer,omitempty" json:"requires_answer,omitempty"`
	ExpectedAnswer string `yaml:"expected_answer,omitempty" json:"expected_answer,omitempty"`
	// Prompt is the short form of the question shown to the learner.
	Prompt string `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	// Voice is a mood hint for the synthesizer, e.g. "friendly".
	Voice string `yaml:"voice,omitempty" json:"voice,omitempty"`
}

type Script struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// Language is a BCP 47 tag used to pick a voice and recognition locale.
	Language string `yaml:"language,omitempty" json:"language,omitempty"`
	Steps    []Step `yaml:"steps" json:"steps" jsonschema:"minItems=1"`
}

var ErrEmptyScript = errors.New("script has no steps")

// Validate reports every problem found in the script.
func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return ErrEmptyScript
	}

	var errs []error
	for i, step := range s.Steps {
		if step.Text == "" {
			errs = append(errs, fmt.Errorf("step %d: text is empty", i))
		}
		if !step.RequiresAnswer && step.ExpectedAnswer != "" {
			errs = append(errs, fmt.Errorf("step %d: expected answer set on a step that does not require one", i))
		}
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy so the caller can keep mutating the original.
func (s Script) Clone() Script {
	var clone Script
	if err := copier.CopyWithOption(&clone, &s, copier.Option{DeepCopy: true}); err != nil {
		clone = Script{Name: s.Name, Language: s.Language, Steps: append([]Step(nil), s.Steps...)}
	}
	return clone
}

// QuestionCount is the number of steps waiting for an answer.
func (s Script) QuestionCount() int {
	count := 0
	for _, step := range s.Steps {
		if step.RequiresAnswer {
			count++
		}
	}
	return count
}

// Decode reads a YAML script and validates it. Unknown fields are rejected.
func Decode(r io.Reader) (Script, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var s Script
	if err := decoder.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, ErrEmptyScript
		}
		return Script{}, fmt.Errorf("failed to decode script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, fmt.Errorf("invalid script: %w", err)
	}
	return s, nil
}

// Load reads a YAML script file.
func Load(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
