// Package pipeline sequences classification, thresholding, seed building,
// generation and cleanup into one request-scoped run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"moodgen/internal/domain"
	"moodgen/internal/prompt"
	"moodgen/internal/sentiment"
)

// MaxVariants caps how many generations one request may ask for.
const MaxVariants = 5

// Classifier scores text with a binary sentiment model. Implementations
// must return a ClassificationError for anything unusable at the boundary.
type Classifier interface {
	Classify(ctx context.Context, text string) (domain.ClassificationResult, error)
	Describe() (provider, model string)
}

// Generator produces raw text from a seed and sampling parameters.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
	Describe() (provider, model string)
}

// Params are the caller-tunable sampling knobs. A zero field means "not
// set" and falls back to the configured default before clamping.
type Params struct {
	MaxLength   int
	Temperature float64
	TopK        int
	TopP        float64
}

type Options struct {
	// SerializeClassifier and SerializeGenerator gate calls to backends
	// that are not safe for concurrent inference. The two gates are
	// independent so stages of different requests still interleave.
	SerializeClassifier bool
	SerializeGenerator  bool

	// GenerationTimeout bounds each generation call. Zero means no extra
	// deadline beyond the caller's context.
	GenerationTimeout time.Duration

	Defaults Params
}

type Pipeline struct {
	classifier Classifier
	generator  Generator
	gate       sentiment.Gate
	prompts    *prompt.Engine
	opts       Options

	classifyMu sync.Mutex
	generateMu sync.Mutex
}

func New(classifier Classifier, generator Generator, gate sentiment.Gate, prompts *prompt.Engine, opts Options) *Pipeline {
	if opts.Defaults.MaxLength == 0 {
		opts.Defaults.MaxLength = domain.DefaultMaxLength
	}
	if opts.Defaults.Temperature == 0 {
		opts.Defaults.Temperature = domain.DefaultTemperature
	}
	if opts.Defaults.TopK == 0 {
		opts.Defaults.TopK = domain.DefaultTopK
	}
	if opts.Defaults.TopP == 0 {
		opts.Defaults.TopP = domain.DefaultTopP
	}
	return &Pipeline{
		classifier: classifier,
		generator:  generator,
		gate:       gate,
		prompts:    prompts,
		opts:       opts,
	}
}

// Classifier returns the wired classifier, for health and status surfaces.
func (p *Pipeline) Classifier() Classifier { return p.classifier }

// Generator returns the wired generator, for health and status surfaces.
func (p *Pipeline) Generator() Generator { return p.generator }

// Run executes the full pipeline once. A non-empty override skips the
// classifier and the gate entirely. Classification and generation errors
// propagate unmodified; there is no retry.
func (p *Pipeline) Run(ctx context.Context, promptText string, override domain.SentimentLabel, params Params) (domain.PipelineResult, error) {
	results, err := p.RunVariants(ctx, promptText, override, params, 1)
	if err != nil {
		return domain.PipelineResult{}, err
	}
	return results[0], nil
}

// RunVariants classifies once and generates n variations from the same
// seed, sequentially. n is clamped to [1, MaxVariants].
func (p *Pipeline) RunVariants(ctx context.Context, promptText string, override domain.SentimentLabel, params Params, n int) ([]domain.PipelineResult, error) {
	start := time.Now()

	promptText = strings.TrimSpace(promptText)
	if promptText == "" {
		provider, _ := p.classifier.Describe()
		return nil, &domain.ClassificationError{Provider: provider, Err: fmt.Errorf("validate prompt: %w", domain.ErrEmptyPrompt)}
	}

	if n < 1 {
		n = 1
	}
	if n > MaxVariants {
		n = MaxVariants
	}

	resolved, err := p.resolveSentiment(ctx, promptText, override)
	if err != nil {
		return nil, err
	}

	seed, err := p.prompts.BuildSeed(resolved.Label, promptText)
	if err != nil {
		return nil, err
	}

	params = p.fillParams(params)
	req := domain.GenerationRequest{
		SeedText:    seed,
		MaxLength:   params.MaxLength,
		Temperature: params.Temperature,
		TopK:        params.TopK,
		TopP:        params.TopP,
	}.Clamped()

	provider, model := p.generator.Describe()

	results := make([]domain.PipelineResult, 0, n)
	for i := 0; i < n; i++ {
		raw, err := p.generate(ctx, req)
		if err != nil {
			return nil, err
		}
		results = append(results, domain.PipelineResult{
			Prompt:    promptText,
			Sentiment: resolved,
			Generation: domain.GenerationResult{
				RawText:     raw,
				CleanedText: Clean(raw, seed),
			},
			Provider: provider,
			Model:    model,
			Elapsed:  time.Since(start),
		})
	}

	log.Printf("pipeline done sentiment=%s source=%s variants=%d max_length=%d elapsed=%s",
		resolved.Label, resolved.Source, n, req.MaxLength, time.Since(start).Round(time.Millisecond))
	return results, nil
}

func (p *Pipeline) resolveSentiment(ctx context.Context, promptText string, override domain.SentimentLabel) (domain.ResolvedSentiment, error) {
	if override != "" {
		return domain.ResolvedSentiment{Label: override, Source: domain.SourceOverridden}, nil
	}

	raw, err := p.classify(ctx, promptText)
	if err != nil {
		return domain.ResolvedSentiment{}, err
	}
	label := p.gate.Resolve(raw)
	if label != raw.Label {
		log.Printf("pipeline gated raw=%s confidence=%.3f resolved=%s", raw.Label, raw.Confidence, label)
	}
	return domain.ResolvedSentiment{Label: label, Confidence: raw.Confidence, Source: domain.SourceDetected}, nil
}

func (p *Pipeline) classify(ctx context.Context, text string) (domain.ClassificationResult, error) {
	if p.opts.SerializeClassifier {
		p.classifyMu.Lock()
		defer p.classifyMu.Unlock()
	}
	return p.classifier.Classify(ctx, text)
}

func (p *Pipeline) generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if p.opts.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.GenerationTimeout)
		defer cancel()
	}
	if p.opts.SerializeGenerator {
		p.generateMu.Lock()
		defer p.generateMu.Unlock()
	}
	return p.generator.Generate(ctx, req)
}

func (p *Pipeline) fillParams(params Params) Params {
	if params.MaxLength == 0 {
		params.MaxLength = p.opts.Defaults.MaxLength
	}
	if params.Temperature == 0 {
		params.Temperature = p.opts.Defaults.Temperature
	}
	if params.TopK == 0 {
		params.TopK = p.opts.Defaults.TopK
	}
	if params.TopP == 0 {
		params.TopP = p.opts.Defaults.TopP
	}
	return params
}
