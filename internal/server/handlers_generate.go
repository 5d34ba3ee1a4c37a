package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"moodgen/internal/domain"
	"moodgen/internal/pipeline"
	"moodgen/internal/render"
)

type generateRequest struct {
	Prompt            string  `json:"prompt"`
	OverrideSentiment string  `json:"override_sentiment"`
	LengthPreset      string  `json:"length_preset"`
	MaxLength         int     `json:"max_length"`
	Temperature       float64 `json:"temperature"`
	TopK              int     `json:"top_k"`
	TopP              float64 `json:"top_p"`
	Variants          int     `json:"variants"`
	IncludeRawText    bool    `json:"include_raw_text"`
}

type sentimentPayload struct {
	Label          string   `json:"label"`
	Confidence     *float64 `json:"confidence,omitempty"`
	Interpretation string   `json:"interpretation,omitempty"`
	Source         string   `json:"source"`
	Emoji          string   `json:"emoji"`
}

type variantPayload struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	RawText   string `json:"raw_text,omitempty"`
}

type generateResponse struct {
	RequestID string           `json:"request_id"`
	Prompt    string           `json:"prompt"`
	Sentiment sentimentPayload `json:"sentiment"`
	Text      string           `json:"text"`
	WordCount int              `json:"word_count"`
	RawText   string           `json:"raw_text,omitempty"`
	Variants  []variantPayload `json:"variants,omitempty"`
	Provider  string           `json:"provider"`
	Model     string           `json:"model"`
	ElapsedMS int64            `json:"elapsed_ms"`
}

func (s *Server) handleGenerate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, errorBody("invalid_request", "request body is not valid JSON"))
	}

	var override domain.SentimentLabel
	if strings.TrimSpace(req.OverrideSentiment) != "" {
		label, ok := domain.ParseSentimentLabel(req.OverrideSentiment)
		if !ok {
			return c.JSON(400, errorBody("invalid_override", fmt.Sprintf("unknown sentiment %q", req.OverrideSentiment)))
		}
		override = label
	}

	params := pipeline.Params{
		MaxLength:   req.MaxLength,
		Temperature: req.Temperature,
		TopK:        req.TopK,
		TopP:        req.TopP,
	}
	if req.LengthPreset != "" {
		length, ok := s.config.Preset(req.LengthPreset)
		if !ok {
			return c.JSON(400, errorBody("invalid_preset", fmt.Sprintf("unknown length preset %q", req.LengthPreset)))
		}
		// An explicit max_length beats the preset.
		if params.MaxLength == 0 {
			params.MaxLength = length
		}
	}

	requestID := uuid.NewString()
	results, err := s.pipe.RunVariants(c.Request().Context(), req.Prompt, override, params, req.Variants)
	if err != nil {
		status, code := errorStatus(err)
		log.Printf("generate failed id=%s status=%d code=%s: %v", requestID, status, code, err)
		return c.JSON(status, errorBody(code, err.Error()))
	}

	first := results[0]
	log.Printf("generate done id=%s sentiment=%s source=%s variants=%d elapsed=%s",
		requestID, first.Sentiment.Label, first.Sentiment.Source, len(results), results[len(results)-1].Elapsed)
	resp := generateResponse{
		RequestID: requestID,
		Prompt:    first.Prompt,
		Sentiment: buildSentimentPayload(first.Sentiment),
		Text:      first.Generation.CleanedText,
		WordCount: len(strings.Fields(first.Generation.CleanedText)),
		Provider:  first.Provider,
		Model:     first.Model,
		ElapsedMS: results[len(results)-1].Elapsed.Milliseconds(),
	}
	if req.IncludeRawText {
		resp.RawText = first.Generation.RawText
	}
	if len(results) > 1 {
		for _, r := range results {
			v := variantPayload{
				Text:      r.Generation.CleanedText,
				WordCount: len(strings.Fields(r.Generation.CleanedText)),
			}
			if req.IncludeRawText {
				v.RawText = r.Generation.RawText
			}
			resp.Variants = append(resp.Variants, v)
		}
	}
	return c.JSON(200, resp)
}

type downloadRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

func (s *Server) handleDownload(c echo.Context) error {
	var req downloadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, errorBody("invalid_request", "request body is not valid JSON"))
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(400, errorBody("empty_text", "text is empty"))
	}

	name := req.Filename
	if name == "" {
		name = render.DefaultFilename
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(200, "text/plain; charset=utf-8", []byte(render.DownloadText(req.Text)))
}

func buildSentimentPayload(resolved domain.ResolvedSentiment) sentimentPayload {
	payload := sentimentPayload{
		Label:  string(resolved.Label),
		Source: string(resolved.Source),
		Emoji:  resolved.Label.Emoji(),
	}
	if resolved.HasConfidence() {
		confidence := resolved.Confidence
		payload.Confidence = &confidence
		payload.Interpretation = domain.ConfidenceInterpretation(resolved.Confidence)
	}
	return payload
}

func errorBody(code, message string) map[string]string {
	return map[string]string{"code": code, "message": message}
}

// errorStatus maps pipeline errors onto HTTP statuses. Empty prompts and
// timeouts are checked by Is before the As checks because both arrive
// wrapped inside the stage error types.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyPrompt):
		return 400, "empty_prompt"
	case errors.Is(err, context.DeadlineExceeded):
		return 504, "generation_timeout"
	}

	var classErr *domain.ClassificationError
	var genErr *domain.GenerationError
	var tplErr *domain.TemplateLookupError
	switch {
	case errors.As(err, &classErr):
		return 502, "classification_failed"
	case errors.As(err, &genErr):
		return 502, "generation_failed"
	case errors.As(err, &tplErr):
		return 500, "template_missing"
	}
	return 500, "internal"
}
