package llm

import "testing"

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("QUIZCRAFT_LLM_PROVIDER", "openai")
	t.Setenv("QUIZCRAFT_OPENAI_API_KEY", "sk-test")
	t.Setenv("QUIZCRAFT_OPENAI_MODEL", "gpt-4o")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("OpenAI config = %+v", cfg.OpenAI)
	}
	// Unset values keep their defaults.
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Errorf("Anthropic.Model = %q, want default", cfg.Anthropic.Model)
	}
}

func TestValidateRequiresKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "anthropic"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate passed with no API key")
	}

	cfg.Anthropic.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate(mock): %v", err)
	}

	cfg.Provider = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate passed with an unknown provider")
	}
}

func TestDiscoverConfigPriority(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("OPENAI_API_KEY", "o")

	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Errorf("DiscoverConfig = (%q, %v), want gemini first", cfg.Provider, ok)
	}

	t.Setenv("GEMINI_API_KEY", "")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "openai" {
		t.Errorf("DiscoverConfig = (%q, %v), want openai next", cfg.Provider, ok)
	}
}

func TestResolveModelPassthrough(t *testing.T) {
	if got := resolveModel("claude-haiku", anthropicModels); got != "claude-haiku-4-5-20251001" {
		t.Errorf("friendly name resolved to %q", got)
	}
	if got := resolveModel("some-exact-model-id", anthropicModels); got != "some-exact-model-id" {
		t.Errorf("exact ID mangled to %q", got)
	}
}
