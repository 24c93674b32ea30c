package llm

import "time"

// Provider names a backend for the classification call.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskClassify TaskType = "classify"
)

// Config holds everything a client needs for one provider.
type Config struct {
	Provider    Provider
	Endpoint    string
	Model       string
	APIKey      string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderGemini,
		Endpoint:    "http://localhost:11434",
		Model:       "gemini-1.5-flash",
		Timeout:     8 * time.Second,
		Temperature: 0.1,
		MaxTokens:   512,
	}
}
