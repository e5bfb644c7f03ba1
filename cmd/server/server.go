package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"studybuddy/config"
	"studybuddy/db"
	"studybuddy/handlers"
	"studybuddy/services"
	"studybuddy/services/agent"
)

func main() {
	cfg := config.Load()

	if cfg.LLMProvider == "anthropic" && cfg.AnthropicAPIKey == "" {
		log.Fatal("ANTHROPIC_API_KEY environment variable is required")
	}
	if cfg.LLMProvider != "anthropic" && cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY (or GROQ_API_KEY) environment variable is required")
	}

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

	chatHandler := handlers.NewChatHandler(agentService)
	studyHandler := handlers.NewStudyHandler(planService, quizService, progressService)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	chatHandler.RegisterRoutes(router)
	studyHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func buildProvider(cfg *config.Config) (agent.Provider, error) {
	if cfg.LLMProvider == "anthropic" {
		return agent.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
	return agent.NewLangchainProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
