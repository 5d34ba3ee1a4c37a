package domain

import "time"

// Sampling parameter bounds. Out-of-range values are clamped into range,
// never rejected; non-positive values clamp up to the minimum.
const (
	MinMaxLength     = 50
	MaxMaxLength     = 500
	DefaultMaxLength = 150

	MinTemperature     = 0.05
	MaxTemperature     = 1.5
	DefaultTemperature = 0.8

	MinTopK     = 1
	MaxTopK     = 1000
	DefaultTopK = 50

	MinTopP     = 0.01
	MaxTopP     = 1.0
	DefaultTopP = 0.95
)

type GenerationRequest struct {
	SeedText    string
	MaxLength   int // token budget for the generated text
	Temperature float64
	TopK        int
	TopP        float64
}

// Clamped returns a copy with every sampling parameter forced into its
// documented bounds.
func (r GenerationRequest) Clamped() GenerationRequest {
	r.MaxLength = clampInt(r.MaxLength, MinMaxLength, MaxMaxLength)
	r.Temperature = clampFloat(r.Temperature, MinTemperature, MaxTemperature)
	r.TopK = clampInt(r.TopK, MinTopK, MaxTopK)
	r.TopP = clampFloat(r.TopP, MinTopP, MaxTopP)
	return r
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type GenerationResult struct {
	RawText     string // as returned by the backend, kept for diagnostics
	CleanedText string
}

type PipelineResult struct {
	Prompt     string
	Sentiment  ResolvedSentiment
	Generation GenerationResult
	Provider   string
	Model      string
	Elapsed    time.Duration
}
