package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// geminiClient implements LLMClient on the Gemini API.
type geminiClient struct {
	cfg      Config
	client   *genai.Client
	observer Observer
}

// NewGeminiClient creates a Gemini-backed LLMClient. An API key is required.
func NewGeminiClient(ctx context.Context, cfg Config, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if observer == nil {
		observer = NoopObserver{}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(c.cfg.Temperature)),
		MaxOutputTokens:  int32(c.cfg.MaxTokens),
		ResponseMIMEType: "application/json",
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(req.UserPrompt), config)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		err = classifyError(ctx, err)
		c.observer.OnCallComplete(LLMCallEvent{
			Task: req.Task, Provider: ProviderGemini, Model: c.cfg.Model,
			LatencyMs: latency, ErrorCode: errorCode(err),
		})
		return nil, err
	}

	c.observer.OnCallComplete(LLMCallEvent{
		Task: req.Task, Provider: ProviderGemini, Model: c.cfg.Model,
		LatencyMs: latency, Success: true,
	})
	return &GenerateResponse{Text: result.Text(), Model: c.cfg.Model, LatencyMs: latency}, nil
}

// Available only checks configuration; the Gemini API has no cheap ping.
func (c *geminiClient) Available(context.Context) bool {
	return c.client != nil && c.cfg.APIKey != ""
}
