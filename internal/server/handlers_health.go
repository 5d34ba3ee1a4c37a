package server

import (
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleHealthz(c echo.Context) error {
	classifierProvider, classifierModel := s.pipe.Classifier().Describe()
	generatorProvider, generatorModel := s.pipe.Generator().Describe()

	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Seconds(),
		"classifier": map[string]string{
			"provider": classifierProvider,
			"model":    classifierModel,
		},
		"generator": map[string]string{
			"provider": generatorProvider,
			"model":    generatorModel,
		},
	})
}

type examplePrompt struct {
	Prompt            string `json:"prompt"`
	ExpectedSentiment string `json:"expected_sentiment"`
}

// Canned prompts the UI offers as one-click starters, one per label.
var examplePrompts = []examplePrompt{
	{Prompt: "a beautiful sunny day at the beach", ExpectedSentiment: "positive"},
	{Prompt: "terrible traffic jams in the city", ExpectedSentiment: "negative"},
	{Prompt: "climate change statistics and trends", ExpectedSentiment: "neutral"},
}

func (s *Server) handleExamples(c echo.Context) error {
	return c.JSON(200, map[string]any{"examples": examplePrompts})
}
