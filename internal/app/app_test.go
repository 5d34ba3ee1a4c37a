package app

import (
	"testing"

	"moodgen/internal/config"
)

func TestBuildClassifierProviderSwitch(t *testing.T) {
	cfg := config.Config{}
	cfg.Classifier.Provider = "huggingface"
	cfg.HFEndpoint = "https://api-inference.huggingface.co"

	provider, model := buildClassifier(cfg).Describe()
	if provider != "huggingface" {
		t.Fatalf("expected huggingface classifier, got %s", provider)
	}
	if model == "" {
		t.Fatal("expected a default classifier model")
	}

	cfg.Classifier.Provider = "openai"
	cfg.OpenAIAPIKey = "sk-test"
	provider, _ = buildClassifier(cfg).Describe()
	if provider != "openai" {
		t.Fatalf("expected openai classifier, got %s", provider)
	}
}

func TestBuildGeneratorProviderSwitch(t *testing.T) {
	cfg := config.Config{}
	cfg.Generator.Provider = "huggingface"
	cfg.HFEndpoint = "https://api-inference.huggingface.co"

	provider, model := buildGenerator(cfg).Describe()
	if provider != "huggingface" {
		t.Fatalf("expected huggingface generator, got %s", provider)
	}
	if model == "" {
		t.Fatal("expected a default generator model")
	}

	cfg.Generator.Provider = "anthropic"
	cfg.AnthropicAPIKey = "sk-ant-test"
	provider, _ = buildGenerator(cfg).Describe()
	if provider != "anthropic" {
		t.Fatalf("expected anthropic generator, got %s", provider)
	}

	cfg.Generator.Provider = "openai"
	cfg.OpenAIAPIKey = "sk-test"
	provider, _ = buildGenerator(cfg).Describe()
	if provider != "openai" {
		t.Fatalf("expected openai generator, got %s", provider)
	}

	cfg.Generator.Provider = "anthropic"
	cfg.Generator.Model = "claude-haiku-4-5"
	_, model = buildGenerator(cfg).Describe()
	if model != "claude-haiku-4-5" {
		t.Fatalf("expected configured model to pass through, got %s", model)
	}
}
