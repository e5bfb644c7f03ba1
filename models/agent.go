package models

// AgentMessage is one entry in the conversation history sent to the
// completion provider.
type AgentMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Step is the structured response the model must return on every turn.
// The step value classifies it: plan, action, observe or output.
type Step struct {
	Step     string `json:"step" jsonschema:"required,description=One of: plan action observe output"`
	Content  string `json:"content,omitempty" jsonschema:"description=Planning note or final answer text"`
	Function string `json:"function,omitempty" jsonschema:"description=The name of the tool to call when step is action"`
	Input    string `json:"input,omitempty" jsonschema:"description=The input parameter for the tool"`
}

// Observation is what gets appended to history after a tool call.
type Observation struct {
	Step   string `json:"step"`
	Output string `json:"output"`
}

const (
	StepPlan    = "plan"
	StepAction  = "action"
	StepObserve = "observe"
	StepOutput  = "output"
)

// TraceEntry is one rendered step of a turn, consumed by the UI collaborator.
type TraceEntry struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// TurnResult is the outcome of one complete user query.
type TurnResult struct {
	Steps  []TraceEntry `json:"steps"`
	Output string       `json:"output"`
}

type ChatRequest struct {
	Username string `json:"username"`
	Query    string `json:"query"`
}
