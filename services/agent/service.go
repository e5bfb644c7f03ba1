package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"studybuddy/models"
)

var (
	// ErrMalformedResponse marks a model response that is not a valid JSON
	// step object. The turn ends immediately; there is no retry.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrUnexpectedStep marks a parsed response whose step value is not one
	// of plan, action or output.
	ErrUnexpectedStep = errors.New("unexpected step in model response")

	// ErrTurnBudgetExceeded marks a turn that hit the iteration cap without
	// reaching an output step.
	ErrTurnBudgetExceeded = errors.New("turn budget exceeded")
)

const defaultMaxSteps = 20

// Service drives the plan/action/observe/output protocol for one user
// query at a time. It owns the message history for the duration of a turn
// and holds no state across turns.
type Service struct {
	provider     Provider
	registry     *Registry
	maxSteps     int
	systemPrompt string
}

func NewService(provider Provider, registry *Registry, maxSteps int) *Service {
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}

	return &Service{
		provider:     provider,
		registry:     registry,
		maxSteps:     maxSteps,
		systemPrompt: BuildSystemPrompt(registry.Tools()),
	}
}

// RunTurn processes one user query through to a terminal output step.
// Each iteration makes exactly one provider call and at most one tool
// invocation; the protocol is strictly sequential because every step
// depends on the prior observation.
func (s *Service) RunTurn(ctx context.Context, username, query string) (*models.TurnResult, error) {
	log.Printf("[INFO] Starting agent turn for user %q", username)

	messages := []models.AgentMessage{
		{Role: "system", Content: s.systemPrompt},
		{Role: "user", Content: query},
	}

	result := &models.TurnResult{Steps: []models.TraceEntry{}}

	for i := 0; i < s.maxSteps; i++ {
		raw, err := s.provider.Complete(ctx, messages)
		if err != nil {
			log.Printf("[ERROR] Completion request failed: %v", err)
			return nil, fmt.Errorf("completion request failed: %w", err)
		}

		var step models.Step
		if err := json.Unmarshal([]byte(raw), &step); err != nil {
			log.Printf("[ERROR] Failed to parse model response: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}

		// The raw assistant content goes back verbatim so the next call
		// replays the exact context.
		messages = append(messages, models.AgentMessage{Role: "assistant", Content: raw})

		switch step.Step {
		case models.StepPlan:
			log.Printf("[INFO] Plan step: %s", step.Content)
			result.Steps = append(result.Steps, models.TraceEntry{Kind: models.StepPlan, Content: step.Content})

		case models.StepAction:
			result.Steps = append(result.Steps, models.TraceEntry{
				Kind:    models.StepAction,
				Content: fmt.Sprintf("Using %s with input: %s", step.Function, step.Input),
			})

			var observation string
			if tool, ok := s.registry.Resolve(step.Function); ok {
				observation = s.registry.Invoke(ctx, tool, step.Input, username)
			} else {
				log.Printf("[INFO] Model requested unknown tool %q", step.Function)
				observation = fmt.Sprintf("Tool '%s' not found", step.Function)
			}

			observeJSON, err := json.Marshal(models.Observation{Step: models.StepObserve, Output: observation})
			if err != nil {
				return nil, fmt.Errorf("failed to marshal observation: %w", err)
			}
			messages = append(messages, models.AgentMessage{Role: "assistant", Content: string(observeJSON)})
			result.Steps = append(result.Steps, models.TraceEntry{Kind: models.StepObserve, Content: observation})

		case models.StepOutput:
			log.Printf("[INFO] Agent turn completed after %d steps", i+1)
			result.Output = step.Content
			return result, nil

		default:
			log.Printf("[ERROR] Unexpected step value %q in model response", step.Step)
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedStep, step.Step)
		}
	}

	log.Printf("[ERROR] Agent turn exceeded budget of %d steps", s.maxSteps)
	return nil, fmt.Errorf("%w: no output after %d steps", ErrTurnBudgetExceeded, s.maxSteps)
}
