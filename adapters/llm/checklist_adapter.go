package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"adlens/domain/core"
	"adlens/domain/narrative"
	"adlens/ports"
)

// Config holds LLM adapter configuration
type Config struct {
	Model       string        // e.g., "gpt-4.1-mini"
	APIKey      string        // OpenAI API key
	BaseURL     string        // Optional override (default: https://api.openai.com/v1)
	Temperature float64       // 0.0-1.0, lower = more deterministic
	MaxTokens   int           // Max tokens in response
	Timeout     time.Duration // Request timeout
}

// DefaultConfig returns sensible checklist-drafting defaults
func DefaultConfig() Config {
	return Config{
		Model:       "gpt-4.1-mini",
		Temperature: 0.1,
		MaxTokens:   512,
		Timeout:     30 * time.Second,
	}
}

// ChecklistAdapter implements ChecklistGenerator using an LLM. The model is
// only ever asked for observable facts; the prompt enumerates the allowed
// keys and the response is validated against the same allow-list downstream.
type ChecklistAdapter struct {
	config    Config
	llmClient LLMClient
}

// NewChecklistAdapter creates a new LLM checklist adapter
func NewChecklistAdapter(config Config) (*ChecklistAdapter, error) {
	client, err := newLLMClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return &ChecklistAdapter{config: config, llmClient: client}, nil
}

// NewChecklistAdapterWithClient creates an adapter with an injected client,
// used in tests.
func NewChecklistAdapterWithClient(config Config, client LLMClient) *ChecklistAdapter {
	return &ChecklistAdapter{config: config, llmClient: client}
}

var _ ports.ChecklistGenerator = (*ChecklistAdapter)(nil)

// GenerateDraft returns the model's raw checklist JSON for a creative
func (a *ChecklistAdapter) GenerateDraft(ctx context.Context, creativeID core.CreativeID, transcript string) ([]byte, error) {
	prompt := buildChecklistPrompt(transcript)
	response, err := a.llmClient.ChatCompletion(ctx, a.config.Model, prompt, a.config.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("checklist draft for creative %s failed: %w", creativeID, err)
	}
	return []byte(extractJSONObject(response)), nil
}

func buildChecklistPrompt(transcript string) string {
	var sb strings.Builder
	sb.WriteString("Read this ad transcript and report what is observably present.\n")
	sb.WriteString("Respond with a single JSON object. You may use ONLY these keys:\n")
	for _, key := range narrative.AllowedDraftKeys() {
		sb.WriteString("  - ")
		sb.WriteString(key)
		sb.WriteString("\n")
	}
	sb.WriteString("\nDo not interpret, score, or evaluate. Report only literal facts: ")
	sb.WriteString("whether a call to action exists and its wording, when the value proposition appears, ")
	sb.WriteString("whether an offer, proof element, visible price, or guarantee is present.\n")
	sb.WriteString("Omit any key you cannot observe. Never add keys outside the list.\n\n")
	sb.WriteString("Transcript:\n")
	sb.WriteString(transcript)
	return sb.String()
}

// extractJSONObject trims markdown fences and surrounding prose that chat
// models sometimes wrap around JSON.
func extractJSONObject(response string) string {
	s := strings.TrimSpace(response)
	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			return s[start : end+1]
		}
	}
	return s
}
