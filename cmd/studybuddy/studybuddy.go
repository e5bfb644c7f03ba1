package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"studybuddy/config"
	"studybuddy/db"
	"studybuddy/models"
	"studybuddy/services"
	"studybuddy/services/agent"
)

// Terminal chat loop. Each query runs as an independent turn; the raw
// message history is not carried across turns.
func main() {
	cfg := config.Load()

	store, err := db.NewSQLStore(cfg.DBDriver, cfg.DBDataSource)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	planService := services.NewPlanService(store)
	quizService := services.NewQuizService(store)
	progressService := services.NewProgressService(store)
	materialService := services.NewMaterialService(store)
	lookupService := services.NewLookupService()

	registry := agent.NewRegistry(
		agent.NewCreateStudyPlanTool(planService),
		agent.NewAnswerQuestionTool(materialService),
		agent.NewGenerateQuizTool(quizService),
		agent.NewCheckQuizAnswerTool(quizService),
		agent.NewTrackProgressTool(progressService),
		agent.NewUpdateTopicProgressTool(progressService),
		agent.NewRetrieveLearningMaterialTool(materialService),
		agent.NewMarkTopicCompleteTool(planService),
		agent.NewWikipediaLookupTool(lookupService),
		agent.NewWebSearchTool(lookupService),
		agent.NewAcademicSearchTool(lookupService),
	)

	provider, err := buildProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize completion provider: %v", err)
	}

	agentService := agent.NewService(provider, registry, cfg.AgentMaxSteps)

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("🤖 Study Buddy AI is ready to help you learn! What's your name?")
	fmt.Print("Username: ")
	if !scanner.Scan() {
		return
	}
	username := strings.TrimSpace(scanner.Text())
	if username == "" {
		username = "default_user"
	}

	fmt.Printf("Welcome, %s! What would you like to study?\n", username)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		switch strings.ToLower(query) {
		case "exit", "quit", "bye":
			fmt.Println("Thanks for studying with Study Buddy AI! See you next time!")
			return
		}

		result, err := agentService.RunTurn(context.Background(), username, query)
		if err != nil {
			fmt.Printf("An error occurred: %v\n", err)
			continue
		}

		for _, step := range result.Steps {
			if step.Kind == models.StepPlan {
				fmt.Printf("🧠: %s\n", step.Content)
			}
		}
		fmt.Printf("📚: %s\n", result.Output)
	}
}

func buildProvider(cfg *config.Config) (agent.Provider, error) {
	if cfg.LLMProvider == "anthropic" {
		return agent.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
	return agent.NewLangchainProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model)
}
