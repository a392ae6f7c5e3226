// Package llm is the optional local-model assist for low-confidence
// classifications. It talks to an OpenAI-compatible endpoint, which in
// the default configuration is a local Ollama server. The deterministic
// classifier is always authoritative when the model is unavailable or
// no more confident.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/beaconhilldata/earmarker/internal/model"
)

const promptTemplate = "Classify if this is an earmark. " +
	"Description: %s. Amount: $%s. " +
	`Respond with JSON: {"is_earmark": bool, "confidence": float, "reasoning": str}`

// Longer descriptions are truncated before prompting to keep the call
// cheap; the opening text carries the classification signal anyway.
const maxPromptDescription = 500

// Classifier sends ambiguous amendments to the model.
type Classifier struct {
	client *openai.Client
	cfg    model.LLMConfig
	log    zerolog.Logger
}

// New builds a Classifier from configuration.
func New(cfg model.LLMConfig, log zerolog.Logger) *Classifier {
	apiKey := cfg.APIKey
	if apiKey == "" {
		// Local endpoints accept any non-empty key.
		apiKey = "ollama"
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Classifier{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		log:    log,
	}
}

// IsAvailable checks whether the endpoint answers at all.
func (c *Classifier) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := c.client.ListModels(ctx); err != nil {
		c.log.Warn().Err(err).Str("base_url", c.cfg.BaseURL).
			Msg("llm endpoint unavailable, using deterministic classifier only")
		return false
	}
	return true
}

// Classify asks the model for a second opinion on one amendment.
func (c *Classifier) Classify(ctx context.Context, description string, amount *float64) (*model.ClassificationResult, error) {
	amountStr := "unknown"
	if amount != nil {
		amountStr = fmt.Sprintf("%.2f", *amount)
	}
	if len(description) > maxPromptDescription {
		description = description[:maxPromptDescription]
	}
	prompt := fmt.Sprintf(promptTemplate, description, amountStr)

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("llm request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("llm returned no choices")
	}

	result, err := parseVerdict(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	result.Reasoning = fmt.Sprintf("llm(%s): %s", c.cfg.Model, result.Reasoning)
	return result, nil
}

// parseVerdict extracts the JSON object from a model response, which may
// wrap it in prose or code fences.
func parseVerdict(response string) (*model.ClassificationResult, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in llm response %q", truncate(response, 100))
	}

	var v struct {
		IsEarmark  *bool    `json:"is_earmark"`
		Confidence *float64 `json:"confidence"`
		Reasoning  string   `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(response[start:end+1]), &v); err != nil {
		return nil, fmt.Errorf("parse llm response: %w", err)
	}
	if v.IsEarmark == nil || v.Confidence == nil {
		return nil, fmt.Errorf("llm response missing required fields")
	}

	reasoning := v.Reasoning
	if reasoning == "" {
		reasoning = "No reasoning provided"
	}
	return &model.ClassificationResult{
		IsEarmark:  *v.IsEarmark,
		Confidence: *v.Confidence,
		Reasoning:  reasoning,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
