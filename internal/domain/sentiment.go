package domain

import "strings"

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// ParseSentimentLabel accepts any casing ("POSITIVE", "Positive", "positive").
// Returns false for anything outside the three known labels.
func ParseSentimentLabel(s string) (SentimentLabel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return SentimentPositive, true
	case "negative":
		return SentimentNegative, true
	case "neutral":
		return SentimentNeutral, true
	}
	return "", false
}

func (l SentimentLabel) Emoji() string {
	switch l {
	case SentimentPositive:
		return "😊"
	case SentimentNegative:
		return "😞"
	default:
		return "😐"
	}
}

type SentimentSource string

const (
	SourceDetected   SentimentSource = "detected"
	SourceOverridden SentimentSource = "overridden"
)

// ClassificationResult is the raw classifier verdict, before thresholding.
// The raw label is never neutral; neutral only appears after the gate.
type ClassificationResult struct {
	Label      SentimentLabel
	Confidence float64 // in [0,1]
}

type ResolvedSentiment struct {
	Label      SentimentLabel
	Confidence float64 // meaningful only when Source == SourceDetected
	Source     SentimentSource
}

// HasConfidence reports whether Confidence carries a real classifier score.
// Overridden sentiment has no score; callers must not render one.
func (s ResolvedSentiment) HasConfidence() bool {
	return s.Source == SourceDetected
}

func ConfidenceInterpretation(confidence float64) string {
	switch {
	case confidence > 0.9:
		return "Very confident"
	case confidence > 0.7:
		return "Confident"
	case confidence > 0.5:
		return "Moderately confident"
	default:
		return "Low confidence"
	}
}
