package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"moodgen/internal/domain"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

// AnthropicGenerator continues seed text with an Anthropic model.
type AnthropicGenerator struct {
	client anthropic.Client
	model  string
}

func NewAnthropicGenerator(apiKey, model string) *AnthropicGenerator {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &AnthropicGenerator{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (g *AnthropicGenerator) Describe() (provider, model string) {
	return "anthropic", g.model
}

func (g *AnthropicGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	// The API rejects requests that set both temperature and top_p, so
	// top_p stays unset here. Temperature above 1.0 is out of range for
	// Anthropic models and gets capped.
	temperature := req.Temperature
	if temperature > 1 {
		temperature = 1
	}

	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   int64(req.MaxLength),
		Temperature: anthropic.Float(temperature),
		TopK:        anthropic.Int(int64(req.TopK)),
		System: []anthropic.TextBlockParam{
			{Text: continuationInstructions, CacheControl: anthropic.NewCacheControlEphemeralParam()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.SeedText)),
		},
	})
	if err != nil {
		log.Printf("llm anthropic error: %v", err)
		return "", &domain.GenerationError{Provider: "anthropic", Err: err}
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			log.Printf("llm anthropic response size=%d tokens_in=%d tokens_out=%d",
				len(block.Text), message.Usage.InputTokens, message.Usage.OutputTokens)
			// The model returns only the continuation. Prepend the seed so
			// raw output has the same shape as the other generators.
			return req.SeedText + block.Text, nil
		}
	}
	return "", &domain.GenerationError{Provider: "anthropic", Err: fmt.Errorf("no text content in response")}
}
