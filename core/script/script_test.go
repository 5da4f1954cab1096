package script

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleScript = `
name: counting
language: en-GB
steps:
  - text: Let's count!
    voice: friendly
  - text: How many apples are there?
    requires_answer: true
    expected_answer: "3"
    prompt: "apples"
`

func TestDecodeReadsSteps(t *testing.T) {
	s, err := Decode(strings.NewReader(sampleScript))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Name != "counting" || s.Language != "en-GB" {
		t.Fatalf("expected name and language to be decoded, got %q %q", s.Name, s.Language)
	}
	if len(s.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(s.Steps))
	}
	if !s.Steps[1].RequiresAnswer || s.Steps[1].ExpectedAnswer != "3" || s.Steps[1].Prompt != "apples" {
		t.Fatalf("expected question step to be decoded, got %#v", s.Steps[1])
	}
	if s.QuestionCount() != 1 {
		t.Fatalf("expected 1 question, got %d", s.QuestionCount())
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("steps:\n  - text: hi\n    colour: red\n"))
	if err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	if _, err := Decode(strings.NewReader("")); !errors.Is(err, ErrEmptyScript) {
		t.Fatalf("expected empty script error, got %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	s := Script{Steps: []Step{
		{Text: ""},
		{Text: "Statement", ExpectedAnswer: "8"},
	}}

	err := s.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "step 0") || !strings.Contains(err.Error(), "step 1") {
		t.Fatalf("expected both steps to be reported, got %v", err)
	}
}

func TestValidateAllowsQuestionWithoutExpectedAnswer(t *testing.T) {
	s := Script{Steps: []Step{{Text: "Tell me anything", RequiresAnswer: true}}}
	if err := s.Validate(); err != nil {
		t.Fatalf("expected open question to be valid, got %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := LandingDemo()
	clone := original.Clone()

	original.Steps[0].Text = "changed"
	if clone.Steps[0].Text == "changed" {
		t.Fatalf("expected clone to be unaffected by changes to the original")
	}
	if len(clone.Steps) != len(original.Steps) {
		t.Fatalf("expected %d steps, got %d", len(original.Steps), len(clone.Steps))
	}
}

func TestLoadReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("steps: []\n"), 0o600); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrEmptyScript) {
		t.Fatalf("expected empty script error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to mention %q, got %v", path, err)
	}
}

func TestLandingDemoIsValid(t *testing.T) {
	demo := LandingDemo()
	if err := demo.Validate(); err != nil {
		t.Fatalf("expected landing demo to be valid, got %v", err)
	}
	if demo.QuestionCount() != 2 {
		t.Fatalf("expected 2 questions, got %d", demo.QuestionCount())
	}
	if demo.Steps[1].ExpectedAnswer != "8" || demo.Steps[3].ExpectedAnswer != "5" {
		t.Fatalf("expected answers 8 and 5, got %q and %q", demo.Steps[1].ExpectedAnswer, demo.Steps[3].ExpectedAnswer)
	}
}

func TestJSONSchemaDescribesSteps(t *testing.T) {
	raw, err := MarshalJSONSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var schema struct {
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
	}
	if err := json.Unmarshal(raw, &schema); err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}
	if _, ok := schema.Properties["steps"]; !ok {
		t.Fatalf("expected steps property in schema, got %s", raw)
	}
	if !strings.Contains(string(raw), "expected_answer") {
		t.Fatalf("expected step fields in schema, got %s", raw)
	}
}
