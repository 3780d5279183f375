package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// Ollama client defaults.
const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "phi3:mini"
	defaultTimeout = 5 * time.Second

	// breakerMaxFailures consecutive failures trip the circuit; it stays
	// open for breakerTimeout before allowing probes again.
	breakerMaxFailures = 3
	breakerTimeout     = 30 * time.Second
)

// OllamaConfig holds Ollama client configuration.
type OllamaConfig struct {
	// BaseURL of the Ollama API (default http://localhost:11434).
	BaseURL string
	// Model used for completions (default phi3:mini).
	Model string
	// Timeout per request (default 5s).
	Timeout time.Duration
}

// OllamaExplainer generates explanations through a local Ollama instance.
// All HTTP calls are wrapped in a circuit breaker so a dead or struggling
// collaborator cannot slow recommendation requests down for long.
type OllamaExplainer struct {
	baseURL string
	model   string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaExplainer creates an explainer with defaults applied for any
// zero config value.
func NewOllamaExplainer(cfg OllamaConfig) *OllamaExplainer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	return &OllamaExplainer{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "ollama-explainer",
			Timeout: breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerMaxFailures
			},
		}),
	}
}

// Explain sends a completion request to Ollama. Returns an error when the
// call fails or the circuit is open; callers degrade to Placeholder.
func (o *OllamaExplainer) Explain(ctx context.Context, prompt string) (string, error) {
	result, err := o.breaker.Execute(func() (interface{}, error) {
		return o.complete(ctx, prompt)
	})
	if err != nil {
		return "", fmt.Errorf("ollama explain: %w", err)
	}
	return result.(string), nil
}

func (o *OllamaExplainer) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var gen generateResponse
	if err := json.Unmarshal(data, &gen); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return strings.TrimSpace(gen.Response), nil
}
