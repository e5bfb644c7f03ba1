package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"studybuddy/models"
)

const systemPromptHeader = `You are Study Buddy AI, a helpful AI assistant specialized in helping students learn effectively.
You work on start, plan, action, observe mode.

For the given user query and available tools, plan the step by step execution.
Based on the planning, select the relevant tool from the available tools.
And based on the tool selection you perform an action to call the tool.
Wait for the observation and based on the observation from the tool call, resolve the user query.

When interacting with users, maintain a friendly, encouraging tone. Focus on making learning personal and exciting!

Rules:
1. Follow the strict json output as per output schema
2. Always perform one step at a time and wait for next input
3. Carefully analyze the user query and determine which educational goal they're trying to achieve
4. Be encouraging and motivational in your final responses
5. Suggest next steps for the student based on their progress`

const systemPromptExample = `Example:
User Query: I want to learn Math and master Algebra in 2 weeks
Output: {"step": "plan", "content": "The user wants to create a study plan for Math with a focus on Algebra over a 2-week period."}
Output: {"step": "plan", "content": "I should use the create_study_plan tool to generate a personalized study plan."}
Output: {"step": "action", "function": "create_study_plan", "input": "Subject: Math, Goal: Master Algebra in 2 weeks"}
Output: {"step": "observe", "output": "Created a personalized study plan for Math with 9 key topics spread over 14 days."}
Output: {"step": "output", "content": "Great news! I've created a personalized 2-week Algebra mastery plan for you with 9 key topics. Ready to start your math journey?"}`

// BuildSystemPrompt assembles the fixed instructions, the step output
// schema and the enumerated tool descriptions.
func BuildSystemPrompt(tools []Tool) string {
	var prompt strings.Builder

	prompt.WriteString(systemPromptHeader)
	prompt.WriteString("\n\nOutput JSON schema:\n")
	prompt.WriteString(stepSchemaJSON())
	prompt.WriteString("\n\nAvailable Tools:\n")

	for _, tool := range tools {
		prompt.WriteString(fmt.Sprintf("- %s: %s\n", tool.Name(), tool.Description()))
	}

	prompt.WriteString("\n")
	prompt.WriteString(systemPromptExample)

	return prompt.String()
}

func stepSchemaJSON() string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(models.Step{})

	rendered, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		// The step struct is static; reflection over it cannot fail at runtime.
		return `{"step": "string", "content": "string", "function": "string", "input": "string"}`
	}
	return string(rendered)
}
