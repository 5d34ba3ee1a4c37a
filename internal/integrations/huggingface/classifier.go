package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"moodgen/internal/domain"
)

// Classifier scores prompt sentiment with a hosted text-classification model.
type Classifier struct {
	endpoint      string
	token         string
	model         string
	maxInputChars int

	warmOnce sync.Once
}

func NewClassifier(endpoint, token, model string, maxInputChars int) *Classifier {
	if model == "" {
		model = defaultClassifierModel
	}
	return &Classifier{endpoint: endpoint, token: token, model: model, maxInputChars: maxInputChars}
}

func (c *Classifier) Describe() (provider, model string) {
	return "huggingface", c.model
}

type classifyPayload struct {
	Inputs  string         `json:"inputs"`
	Options requestOptions `json:"options"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify returns the model's binary sentiment verdict for text. The first
// call in the process fires a small warm probe beforehand so the hosted
// model is loaded once and reused by every later call.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.ClassificationResult, error) {
	c.warmOnce.Do(func() {
		start := time.Now()
		if _, err := c.classify(ctx, "ok"); err != nil {
			log.Printf("classifier warm probe failed model=%s: %v", c.model, err)
			return
		}
		log.Printf("classifier warm model=%s elapsed=%s", c.model, time.Since(start).Round(time.Millisecond))
	})
	return c.classify(ctx, text)
}

// Ping runs a minimal classification so scheduled warmers can keep the
// hosted model loaded.
func (c *Classifier) Ping(ctx context.Context) error {
	_, err := c.classify(ctx, "ok")
	return err
}

func (c *Classifier) classify(ctx context.Context, text string) (domain.ClassificationResult, error) {
	if runes := []rune(text); c.maxInputChars > 0 && len(runes) > c.maxInputChars {
		log.Printf("classifier input truncated model=%s chars=%d limit=%d", c.model, len(runes), c.maxInputChars)
		text = string(runes[:c.maxInputChars])
	}

	payload := classifyPayload{
		Inputs:  text,
		Options: requestOptions{WaitForModel: true, UseCache: true},
	}
	body, err := post(ctx, c.endpoint, c.token, c.model, payload)
	if err != nil {
		return domain.ClassificationResult{}, &domain.ClassificationError{Provider: "huggingface", Err: err}
	}

	scores, err := parseLabelScores(body)
	if err != nil {
		return domain.ClassificationResult{}, &domain.ClassificationError{Provider: "huggingface", Err: err}
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	var label domain.SentimentLabel
	switch strings.ToUpper(strings.TrimSpace(best.Label)) {
	case "POSITIVE":
		label = domain.SentimentPositive
	case "NEGATIVE":
		label = domain.SentimentNegative
	default:
		return domain.ClassificationResult{}, &domain.ClassificationError{
			Provider: "huggingface",
			Err:      fmt.Errorf("unexpected label %q in response", best.Label),
		}
	}
	if best.Score < 0 || best.Score > 1 {
		return domain.ClassificationResult{}, &domain.ClassificationError{
			Provider: "huggingface",
			Err:      fmt.Errorf("score %v outside [0,1]", best.Score),
		}
	}

	return domain.ClassificationResult{Label: label, Confidence: best.Score}, nil
}

// parseLabelScores accepts both response shapes the inference API produces
// for text classification: a nested [[{label,score}]] batch and a flat
// [{label,score}] list.
func parseLabelScores(body []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}
	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}
	return nil, fmt.Errorf("unexpected classification response: %s", strings.TrimSpace(string(body)))
}
