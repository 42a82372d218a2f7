package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured for the gemini provider.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiCompleter sends prompts to Google Gemini.
type GeminiCompleter struct {
	client *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewGeminiCompleter creates a Gemini client. An empty API key yields a
// completer whose calls fail, so classification degrades to the overflow label.
func NewGeminiCompleter(ctx context.Context, apiKey, modelName string, opts ...option.ClientOption) (*GeminiCompleter, error) {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	g := &GeminiCompleter{modelName: modelName}
	if apiKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	g.model = client.GenerativeModel(modelName)
	return g, nil
}

func (g *GeminiCompleter) Name() string {
	return ProviderGemini
}

// Model returns the Gemini model prompts are sent to.
func (g *GeminiCompleter) Model() string {
	return g.modelName
}

func (g *GeminiCompleter) Complete(ctx context.Context, prompt Prompt) CompletionResult {
	if g.model == nil {
		return Failure(ErrMissingAPIKey)
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt.Combined()))
	if err != nil {
		return Failure(fmt.Errorf("gemini request failed: %w", err))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Failure(errors.New("gemini returned an empty response"))
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return Success(sb.String())
}

// Close releases the underlying client.
func (g *GeminiCompleter) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}
