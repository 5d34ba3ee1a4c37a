// Package sentiment holds the confidence threshold policy that decides when
// a raw classifier verdict is trustworthy enough to keep.
package sentiment

import "moodgen/internal/domain"

type Gate struct {
	threshold float64
}

func NewGate(threshold float64) Gate {
	return Gate{threshold: threshold}
}

// Resolve maps a raw classifier verdict to the final sentiment label.
// Confidence at or above the threshold keeps the raw label; anything below
// falls back to neutral. The bound is inclusive on the confident side.
func (g Gate) Resolve(result domain.ClassificationResult) domain.SentimentLabel {
	if result.Confidence < g.threshold {
		return domain.SentimentNeutral
	}
	return result.Label
}
