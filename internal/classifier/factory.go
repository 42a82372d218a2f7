package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Supported providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderStatic = "static"
)

// ErrMissingAPIKey is reported by providers whose credential is not set.
var ErrMissingAPIKey = errors.New("API key not set")

// ProviderConfig selects and configures a completion provider.
type ProviderConfig struct {
	Provider  string
	Model     string
	BaseURL   string
	APIKeyEnv string
	Timeout   time.Duration
	// Overflow is the static provider's answer.
	Overflow string
}

// NormalizeProvider returns the canonical provider name: trimmed, lower case,
// and ProviderStatic when empty.
func NormalizeProvider(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ProviderStatic
	}
	return name
}

// NeedsAPIKey reports whether the provider authenticates with a credential.
func (c ProviderConfig) NeedsAPIKey() bool {
	switch NormalizeProvider(c.Provider) {
	case ProviderGemini, ProviderOpenAI:
		return true
	default:
		return false
	}
}

// APIKey reads the credential from the configured environment variable.
func (c ProviderConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

// NewCompleter builds the completer named by cfg.Provider.
func NewCompleter(ctx context.Context, cfg ProviderConfig) (Completer, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch NormalizeProvider(cfg.Provider) {
	case ProviderGemini:
		return NewGeminiCompleter(ctx, cfg.APIKey(), cfg.Model)
	case ProviderOpenAI:
		return NewOpenAICompleter(cfg.BaseURL, cfg.APIKey(), cfg.Model, httpClient), nil
	case ProviderOllama:
		return NewOllamaCompleter(cfg.BaseURL, cfg.Model, httpClient), nil
	case ProviderStatic:
		return NewStaticCompleter(cfg.Overflow), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
