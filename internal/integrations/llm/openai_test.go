package llm

import (
	"strings"
	"testing"

	"moodgen/internal/domain"
)

func TestVerdictToResult(t *testing.T) {
	tests := []struct {
		verdict   sentimentVerdict
		wantLabel domain.SentimentLabel
		wantErr   string
	}{
		{sentimentVerdict{Label: "POSITIVE", Confidence: 0.97}, domain.SentimentPositive, ""},
		{sentimentVerdict{Label: "NEGATIVE", Confidence: 0.55}, domain.SentimentNegative, ""},
		{sentimentVerdict{Label: "positive", Confidence: 0.8}, domain.SentimentPositive, ""},
		{sentimentVerdict{Label: " negative ", Confidence: 0.8}, domain.SentimentNegative, ""},
		{sentimentVerdict{Label: "NEUTRAL", Confidence: 0.8}, "", "unexpected label"},
		{sentimentVerdict{Label: "", Confidence: 0.8}, "", "unexpected label"},
		{sentimentVerdict{Label: "POSITIVE", Confidence: 1.2}, "", "outside [0,1]"},
		{sentimentVerdict{Label: "POSITIVE", Confidence: -0.1}, "", "outside [0,1]"},
	}

	for _, tt := range tests {
		got, err := verdictToResult(tt.verdict)
		if tt.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("verdictToResult(%+v) error = %v, want containing %q", tt.verdict, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("verdictToResult(%+v) failed: %v", tt.verdict, err)
		}
		if got.Label != tt.wantLabel {
			t.Fatalf("verdictToResult(%+v) label = %s, want %s", tt.verdict, got.Label, tt.wantLabel)
		}
		if got.Confidence != tt.verdict.Confidence {
			t.Fatalf("verdictToResult(%+v) confidence = %v", tt.verdict, got.Confidence)
		}
	}
}

func TestOpenAIDescribe(t *testing.T) {
	c := NewOpenAIClassifier("sk-test", "", 2000)
	if provider, model := c.Describe(); provider != "openai" || model != defaultOpenAIModel {
		t.Fatalf("unexpected classifier Describe: %s %s", provider, model)
	}

	g := NewOpenAIGenerator("sk-test", "gpt-4.1")
	if provider, model := g.Describe(); provider != "openai" || model != "gpt-4.1" {
		t.Fatalf("unexpected generator Describe: %s %s", provider, model)
	}
}

func TestAnthropicDescribe(t *testing.T) {
	g := NewAnthropicGenerator("sk-ant-test", "")
	if provider, model := g.Describe(); provider != "anthropic" || model != defaultAnthropicModel {
		t.Fatalf("unexpected Describe: %s %s", provider, model)
	}
}
