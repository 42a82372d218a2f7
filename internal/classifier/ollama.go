package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Defaults for a local Ollama server
const (
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "llama3.2"
)

// OllamaCompleter calls the Ollama /api/generate endpoint without streaming.
type OllamaCompleter struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	System  string         `json:"system,omitempty"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaCompleter creates an Ollama client.
func NewOllamaCompleter(baseURL, model string, httpClient *http.Client) *OllamaCompleter {
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	if model == "" {
		model = DefaultOllamaModel
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OllamaCompleter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: httpClient,
	}
}

func (o *OllamaCompleter) Name() string {
	return ProviderOllama
}

// Model returns the local model named in each request.
func (o *OllamaCompleter) Model() string {
	return o.model
}

func (o *OllamaCompleter) Complete(ctx context.Context, prompt Prompt) CompletionResult {
	payload, err := json.Marshal(ollamaRequest{
		Model:  o.model,
		System: prompt.System,
		Prompt: prompt.User,
		Stream: false,
		Options: &ollamaOptions{
			NumPredict:  32,
			Temperature: 0,
		},
	})
	if err != nil {
		return Failure(fmt.Errorf("failed to encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return Failure(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return Failure(fmt.Errorf("ollama API connection error: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Failure(fmt.Errorf("ollama API error: %d - %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var decoded ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Failure(fmt.Errorf("malformed ollama response: %w", err))
	}
	if decoded.Response == "" {
		return Failure(errors.New("ollama returned empty response"))
	}
	return Success(decoded.Response)
}
