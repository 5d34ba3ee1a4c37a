package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestSentimentVerdictSchemaShape(t *testing.T) {
	schema := sentimentVerdictSchema

	if got, ok := schema["type"].(string); !ok || got != "object" {
		t.Fatalf("expected object schema, got %v", schema["type"])
	}
	if got, ok := schema["additionalProperties"].(bool); !ok || got {
		t.Fatalf("expected additionalProperties false, got %v", schema["additionalProperties"])
	}

	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing properties map: %v", schema)
	}
	for _, name := range []string{"label", "confidence"} {
		if _, ok := props[name]; !ok {
			t.Fatalf("expected property %q in schema", name)
		}
	}

	label, ok := props["label"].(map[string]interface{})
	if !ok {
		t.Fatalf("label property is not an object: %v", props["label"])
	}
	enum, ok := label["enum"].([]interface{})
	if !ok || len(enum) != 2 {
		t.Fatalf("expected two-value enum on label, got %v", label["enum"])
	}

	required, ok := schema["required"].([]string)
	if !ok {
		// ensureOpenAICompliance writes []string, the reflector []interface{}.
		raw, rawOK := schema["required"].([]interface{})
		if !rawOK {
			t.Fatalf("missing required list: %v", schema["required"])
		}
		for _, r := range raw {
			required = append(required, r.(string))
		}
	}
	joined := strings.Join(required, ",")
	if !strings.Contains(joined, "label") || !strings.Contains(joined, "confidence") {
		t.Fatalf("expected all properties required, got %v", required)
	}
}

func TestDecodeModelJSON(t *testing.T) {
	var verdict sentimentVerdict

	if err := decodeModelJSON(`{"label":"POSITIVE","confidence":0.97}`, &verdict); err != nil {
		t.Fatalf("plain JSON failed: %v", err)
	}
	if verdict.Label != "POSITIVE" || verdict.Confidence != 0.97 {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}

	wrapped := "Here is the verdict:\n```json\n{\"label\":\"NEGATIVE\",\"confidence\":0.8}\n```"
	if err := decodeModelJSON(wrapped, &verdict); err != nil {
		t.Fatalf("wrapped JSON failed: %v", err)
	}
	if verdict.Label != "NEGATIVE" || verdict.Confidence != 0.8 {
		t.Fatalf("unexpected verdict from wrapped JSON: %+v", verdict)
	}

	if err := decodeModelJSON("no json here", &verdict); err == nil {
		t.Fatalf("expected error for output without JSON")
	}
	if err := decodeModelJSON("   ", &verdict); err == nil {
		t.Fatalf("expected error for blank output")
	}
}

func TestRetryErrorClassification(t *testing.T) {
	rateLimit := []error{
		errors.New("429 Too Many Requests"),
		errors.New("rate limit exceeded, slow down"),
	}
	for _, err := range rateLimit {
		if !isRateLimitError(err) {
			t.Fatalf("expected rate-limit classification for %v", err)
		}
		if isServerError(err) {
			t.Fatalf("did not expect server-error classification for %v", err)
		}
	}

	server := []error{
		errors.New("500 Internal Server Error"),
		errors.New(`{"error":{"type":"server_error"}}`),
	}
	for _, err := range server {
		if !isServerError(err) {
			t.Fatalf("expected server-error classification for %v", err)
		}
	}

	if isRateLimitError(nil) || isServerError(nil) {
		t.Fatalf("nil error must not classify as retryable")
	}
	if isRateLimitError(errors.New("401 Unauthorized")) || isServerError(errors.New("401 Unauthorized")) {
		t.Fatalf("auth errors must not classify as retryable")
	}
}
