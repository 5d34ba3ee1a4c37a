package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"moodgen/internal/domain"
)

const defaultOpenAIModel = "gpt-4o-mini"

type sentimentVerdict struct {
	Label      string  `json:"label" jsonschema:"enum=POSITIVE,enum=NEGATIVE"`
	Confidence float64 `json:"confidence"`
}

var sentimentVerdictSchema = generateSchema[sentimentVerdict]()

// OpenAIClassifier scores prompt sentiment with an OpenAI model through the
// structured-output responses API.
type OpenAIClassifier struct {
	client        *openai.Client
	model         string
	maxInputChars int
}

func NewOpenAIClassifier(apiKey, model string, maxInputChars int) *OpenAIClassifier {
	if model == "" {
		model = defaultOpenAIModel
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClassifier{client: &client, model: model, maxInputChars: maxInputChars}
}

func (c *OpenAIClassifier) Describe() (provider, model string) {
	return "openai", c.model
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (domain.ClassificationResult, error) {
	if runes := []rune(text); c.maxInputChars > 0 && len(runes) > c.maxInputChars {
		log.Printf("classifier input truncated model=%s chars=%d limit=%d", c.model, len(runes), c.maxInputChars)
		text = string(runes[:c.maxInputChars])
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "SentimentVerdict",
			Schema:      sentimentVerdictSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Binary sentiment verdict JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(100),
		Instructions:    openai.String(classifierInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := callWithRetry(ctx, c.client, params)
	if err != nil {
		return domain.ClassificationResult{}, &domain.ClassificationError{Provider: "openai", Err: err}
	}

	var verdict sentimentVerdict
	if err := decodeModelJSON(resp.OutputText(), &verdict); err != nil {
		return domain.ClassificationResult{}, &domain.ClassificationError{Provider: "openai", Err: fmt.Errorf("unmarshal verdict: %w", err)}
	}
	result, err := verdictToResult(verdict)
	if err != nil {
		return domain.ClassificationResult{}, &domain.ClassificationError{Provider: "openai", Err: err}
	}
	return result, nil
}

func verdictToResult(verdict sentimentVerdict) (domain.ClassificationResult, error) {
	var label domain.SentimentLabel
	switch strings.ToUpper(strings.TrimSpace(verdict.Label)) {
	case "POSITIVE":
		label = domain.SentimentPositive
	case "NEGATIVE":
		label = domain.SentimentNegative
	default:
		return domain.ClassificationResult{}, fmt.Errorf("unexpected label %q in verdict", verdict.Label)
	}
	if verdict.Confidence < 0 || verdict.Confidence > 1 {
		return domain.ClassificationResult{}, fmt.Errorf("confidence %v outside [0,1]", verdict.Confidence)
	}
	return domain.ClassificationResult{Label: label, Confidence: verdict.Confidence}, nil
}

// OpenAIGenerator continues seed text with an OpenAI model.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	if model == "" {
		model = defaultOpenAIModel
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIGenerator{client: &client, model: model}
}

func (g *OpenAIGenerator) Describe() (provider, model string) {
	return "openai", g.model
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	// The responses API has no top_k control, so that knob only applies to
	// the other providers.
	params := responses.ResponseNewParams{
		Model:           g.model,
		MaxOutputTokens: openai.Int(int64(req.MaxLength)),
		Temperature:     openai.Float(req.Temperature),
		TopP:            openai.Float(req.TopP),
		Instructions:    openai.String(continuationInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(req.SeedText, responses.EasyInputMessageRoleUser),
			},
		},
	}

	resp, err := callWithRetry(ctx, g.client, params)
	if err != nil {
		return "", &domain.GenerationError{Provider: "openai", Err: err}
	}

	text := resp.OutputText()
	if strings.TrimSpace(text) == "" {
		return "", &domain.GenerationError{Provider: "openai", Err: fmt.Errorf("no text content in response")}
	}
	log.Printf("llm openai response size=%d", len(text))
	// The model returns only the continuation. Prepend the seed so raw
	// output has the same shape as the other generators.
	return req.SeedText + text, nil
}
