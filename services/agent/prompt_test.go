package agent

import (
	"strings"
	"testing"
)

func TestBuildSystemPromptEnumeratesTools(t *testing.T) {
	tools := []Tool{
		&recordingTool{name: "create_study_plan"},
		&recordingTool{name: "generate_quiz"},
		&recordingTool{name: "wikipedia_lookup"},
	}

	prompt := BuildSystemPrompt(tools)

	for _, tool := range tools {
		line := "- " + tool.Name() + ": " + tool.Description()
		if !strings.Contains(prompt, line) {
			t.Errorf("prompt is missing tool line %q", line)
		}
	}

	if !strings.Contains(prompt, "Study Buddy AI") {
		t.Error("prompt is missing the assistant persona")
	}
	if !strings.Contains(prompt, "Output JSON schema:") {
		t.Error("prompt is missing the output schema section")
	}

	// The reflected schema names every step field.
	for _, field := range []string{`"step"`, `"content"`, `"function"`, `"input"`} {
		if !strings.Contains(prompt, field) {
			t.Errorf("schema section is missing field %s", field)
		}
	}
}

func TestStepSchemaMentionsStepValues(t *testing.T) {
	schema := stepSchemaJSON()

	for _, value := range []string{"plan", "action", "observe", "output"} {
		if !strings.Contains(schema, value) {
			t.Errorf("schema is missing step value %q", value)
		}
	}
}
