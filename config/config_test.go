package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_DRIVER", "DB_URL", "DB_PATH", "LLM_PROVIDER",
		"OPENAI_API_KEY", "GROQ_API_KEY", "OPENAI_BASE_URL", "MODEL",
		"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL", "PORT", "AGENT_MAX_STEPS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.DBDriver != "sqlite3" {
		t.Errorf("expected default driver sqlite3, got %q", cfg.DBDriver)
	}
	if cfg.DBDataSource != "study_buddy.db" {
		t.Errorf("expected default data source study_buddy.db, got %q", cfg.DBDataSource)
	}
	if cfg.LLMProvider != "openai" {
		t.Errorf("expected default provider openai, got %q", cfg.LLMProvider)
	}
	if cfg.OpenAIBaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL %q, got %q", DefaultBaseURL, cfg.OpenAIBaseURL)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("expected default model %q, got %q", DefaultModel, cfg.Model)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.AgentMaxSteps != DefaultAgentMaxSteps {
		t.Errorf("expected default max steps %d, got %d", DefaultAgentMaxSteps, cfg.AgentMaxSteps)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_URL", "postgres://localhost/studybuddy?sslmode=disable")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("AGENT_MAX_STEPS", "5")

	cfg := Load()

	if cfg.DBDriver != "postgres" {
		t.Errorf("expected driver postgres, got %q", cfg.DBDriver)
	}
	if cfg.DBDataSource != "postgres://localhost/studybuddy?sslmode=disable" {
		t.Errorf("unexpected data source %q", cfg.DBDataSource)
	}
	if cfg.OpenAIAPIKey != "gsk_test" {
		t.Errorf("expected the Groq key fallback, got %q", cfg.OpenAIAPIKey)
	}
	if cfg.AgentMaxSteps != 5 {
		t.Errorf("expected max steps 5, got %d", cfg.AgentMaxSteps)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("AGENT_MAX_STEPS", "not a number")
	if got := getEnvInt("AGENT_MAX_STEPS", 20); got != 20 {
		t.Errorf("expected fallback 20 for an unparsable value, got %d", got)
	}
}
