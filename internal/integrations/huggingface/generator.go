package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"moodgen/internal/domain"
)

// Generator continues seed text with a hosted causal language model.
type Generator struct {
	endpoint string
	token    string
	model    string

	warmOnce sync.Once
}

func NewGenerator(endpoint, token, model string) *Generator {
	if model == "" {
		model = defaultGeneratorModel
	}
	return &Generator{endpoint: endpoint, token: token, model: model}
}

func (g *Generator) Describe() (provider, model string) {
	return "huggingface", g.model
}

type generatePayload struct {
	Inputs     string         `json:"inputs"`
	Parameters sampling       `json:"parameters"`
	Options    requestOptions `json:"options"`
}

type sampling struct {
	MaxLength      int     `json:"max_length"`
	Temperature    float64 `json:"temperature"`
	TopK           int     `json:"top_k"`
	TopP           float64 `json:"top_p"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generatedOutput struct {
	GeneratedText string `json:"generated_text"`
}

// Generate returns the raw continuation including the seed text. The first
// call in the process fires a small warm probe beforehand so the hosted
// model is loaded once and reused by every later call.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	g.warmOnce.Do(func() {
		start := time.Now()
		if err := g.Ping(ctx); err != nil {
			log.Printf("generator warm probe failed model=%s: %v", g.model, err)
			return
		}
		log.Printf("generator warm model=%s elapsed=%s", g.model, time.Since(start).Round(time.Millisecond))
	})
	return g.generate(ctx, req)
}

// Ping runs a minimal generation so scheduled warmers can keep the hosted
// model loaded.
func (g *Generator) Ping(ctx context.Context) error {
	_, err := g.generate(ctx, domain.GenerationRequest{
		SeedText:    "Hello",
		MaxLength:   domain.MinMaxLength,
		Temperature: domain.DefaultTemperature,
		TopK:        domain.DefaultTopK,
		TopP:        domain.DefaultTopP,
	})
	return err
}

func (g *Generator) generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	// Sampling stays on and response caching stays off so repeated calls
	// with the same seed produce distinct drafts.
	payload := generatePayload{
		Inputs: req.SeedText,
		Parameters: sampling{
			MaxLength:      req.MaxLength,
			Temperature:    req.Temperature,
			TopK:           req.TopK,
			TopP:           req.TopP,
			DoSample:       true,
			ReturnFullText: true,
		},
		Options: requestOptions{WaitForModel: true, UseCache: false},
	}
	body, err := post(ctx, g.endpoint, g.token, g.model, payload)
	if err != nil {
		return "", &domain.GenerationError{Provider: "huggingface", Err: err}
	}

	var outputs []generatedOutput
	if err := json.Unmarshal(body, &outputs); err != nil {
		return "", &domain.GenerationError{Provider: "huggingface", Err: fmt.Errorf("parsing response: %w", err)}
	}
	if len(outputs) == 0 || outputs[0].GeneratedText == "" {
		return "", &domain.GenerationError{Provider: "huggingface", Err: fmt.Errorf("empty generation in response")}
	}
	return outputs[0].GeneratedText, nil
}
