package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"studybuddy/models"
)

// Provider returns one raw completion for the accumulated conversation.
// The response is expected to be a single JSON step object.
type Provider interface {
	Complete(ctx context.Context, messages []models.AgentMessage) (string, error)
}

// LangchainProvider speaks to any OpenAI-compatible chat endpoint with the
// response format constrained to a JSON object. This is the default and
// covers Groq, which the original deployment used.
type LangchainProvider struct {
	llm llms.Model
}

func NewLangchainProvider(apiKey, baseURL, model string) (*LangchainProvider, error) {
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
		openai.WithResponseFormat(openai.ResponseFormatJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	return &LangchainProvider{llm: llm}, nil
}

func (p *LangchainProvider) Complete(ctx context.Context, messages []models.AgentMessage) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		content = append(content, llms.TextParts(chatMessageType(msg.Role), msg.Content))
	}

	response, err := p.llm.GenerateContent(ctx, content)
	if err != nil {
		return "", fmt.Errorf("completion call failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

func chatMessageType(role string) schema.ChatMessageType {
	switch role {
	case "system":
		return schema.ChatMessageTypeSystem
	case "assistant":
		return schema.ChatMessageTypeAI
	default:
		return schema.ChatMessageTypeHuman
	}
}

// AnthropicProvider is the alternate backend. Anthropic has no JSON
// response mode, so the system prompt alone constrains the output shape.
type AnthropicProvider struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicProvider(apiKey, model string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicProvider{client: &client, model: anthropic.Model(model)}, nil
}

func (p *AnthropicProvider) Complete(ctx context.Context, messages []models.AgentMessage) (string, error) {
	var system string
	var converted []anthropic.MessageParam

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			system = msg.Content
		case "assistant":
			converted = append(converted, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			converted = append(converted, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	response, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  converted,
	})
	if err != nil {
		return "", fmt.Errorf("completion call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(textBlock.Text)
		}
	}

	return strings.TrimSpace(text.String()), nil
}
