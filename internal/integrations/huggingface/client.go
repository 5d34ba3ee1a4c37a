// Package huggingface calls the Hugging Face Inference API for sentiment
// classification and text generation over plain HTTP.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"moodgen/internal/httpx"
)

// Default hosted models: the SST-2 DistilBERT checkpoint for sentiment and
// the small GPT-2 distillation for generation.
const (
	defaultClassifierModel = "distilbert-base-uncased-finetuned-sst-2-english"
	defaultGeneratorModel  = "distilgpt2"
)

var externalHTTPClient = httpx.ExternalHTTPClient()

// requestOptions is the options block accepted by every inference endpoint.
// wait_for_model blocks the request while a cold model loads instead of
// failing with 503.
type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

type apiErrorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

func post(ctx context.Context, endpoint, token, model string, payload any) ([]byte, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/models/%s", strings.TrimRight(endpoint, "/"), model)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := externalHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling inference API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != 200 {
		var apiErr apiErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			if resp.StatusCode == 503 && apiErr.EstimatedTime > 0 {
				return nil, fmt.Errorf("Hugging Face model %s still loading (estimated %.0fs): %s",
					model, apiErr.EstimatedTime, apiErr.Error)
			}
			return nil, fmt.Errorf("Hugging Face API returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("Hugging Face API returned %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
