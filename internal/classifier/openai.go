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

// Defaults for the OpenAI-compatible provider
const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4"
)

// OpenAICompleter calls an OpenAI-compatible chat completions endpoint.
type OpenAICompleter struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenAICompleter creates a chat completions client.
func NewOpenAICompleter(baseURL, apiKey, model string, httpClient *http.Client) *OpenAICompleter {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OpenAICompleter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

func (o *OpenAICompleter) Name() string {
	return ProviderOpenAI
}

// Model returns the chat model named in each request.
func (o *OpenAICompleter) Model() string {
	return o.model
}

func (o *OpenAICompleter) Complete(ctx context.Context, prompt Prompt) CompletionResult {
	if o.apiKey == "" {
		return Failure(ErrMissingAPIKey)
	}

	payload, err := json.Marshal(chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
	})
	if err != nil {
		return Failure(fmt.Errorf("failed to encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return Failure(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return Failure(fmt.Errorf("openai request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failure(fmt.Errorf("failed to read response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return Failure(fmt.Errorf("openai API error: %d - %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Failure(fmt.Errorf("malformed openai response: %w", err))
	}
	if decoded.Error != nil {
		return Failure(fmt.Errorf("openai API error: %s", decoded.Error.Message))
	}
	if len(decoded.Choices) == 0 {
		return Failure(errors.New("openai returned no choices"))
	}

	return Success(decoded.Choices[0].Message.Content)
}
