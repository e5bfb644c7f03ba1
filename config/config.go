package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver        string
	DBDataSource    string
	LLMProvider     string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	Model           string
	AnthropicAPIKey string
	AnthropicModel  string
	Port            string
	AgentMaxSteps   int
}

const (
	// The original deployment ran against Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "meta-llama/llama-4-maverick-17b-128e-instruct"

	DefaultAgentMaxSteps = 20
)

func Load() *Config {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:        getEnv("DB_DRIVER", "sqlite3"),
		DBDataSource:    os.Getenv("DB_URL"),
		LLMProvider:     getEnv("LLM_PROVIDER", "openai"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", DefaultBaseURL),
		Model:           getEnv("MODEL", DefaultModel),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		Port:            getEnv("PORT", "8080"),
		AgentMaxSteps:   getEnvInt("AGENT_MAX_STEPS", DefaultAgentMaxSteps),
	}

	// Groq keys are accepted under their conventional name too.
	if cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = os.Getenv("GROQ_API_KEY")
	}

	if cfg.DBDataSource == "" {
		cfg.DBDataSource = getEnv("DB_PATH", "study_buddy.db")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
