// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/expense-ledger/internal/classifier"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. EXPENSE_LOG_LEVEL.
const EnvPrefix = "EXPENSE"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Ledger struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Categories struct {
		Profile string `mapstructure:"profile" yaml:"profile"`
		File    string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	AI struct {
		Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
		Provider          string `mapstructure:"provider" yaml:"provider"`
		Model             string `mapstructure:"model" yaml:"model"`
		BaseURL           string `mapstructure:"base_url" yaml:"base_url"`
		APIKeyEnv         string `mapstructure:"api_key_env" yaml:"api_key_env"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	} `mapstructure:"ai" yaml:"ai"`

	Server struct {
		Addr           string   `mapstructure:"addr" yaml:"addr"`
		AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig loads configuration from the standard locations.
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig initializes Viper configuration with hierarchical loading:
// defaults, then the config file, then EXPENSE_* environment variables.
// An explicit configFile must exist.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.expense-ledger")
		v.AddConfigPath(".expense-ledger")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicit)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("ledger.file", "expenses.csv")

	v.SetDefault("categories.profile", models.ProfileBudget)
	v.SetDefault("categories.file", "")

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", classifier.ProviderOpenAI)
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.api_key_env", "API_KEY")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.requests_per_minute", 0)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if err := validation.IsValidLedgerPath(config.Ledger.File); err != nil {
		return fmt.Errorf("invalid ledger.file: %w", err)
	}

	if config.Categories.File == "" {
		if _, err := models.BuiltinCategorySet(config.Categories.Profile); err != nil {
			return err
		}
	}

	switch classifier.NormalizeProvider(config.AI.Provider) {
	case classifier.ProviderGemini, classifier.ProviderOpenAI, classifier.ProviderOllama, classifier.ProviderStatic:
	default:
		return fmt.Errorf("invalid ai.provider: %s (must be gemini, openai, ollama or static)", config.AI.Provider)
	}

	if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
		return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
	}

	if config.AI.RequestsPerMinute < 0 || config.AI.RequestsPerMinute > 1000 {
		return fmt.Errorf("ai.requests_per_minute must be between 0 and 1000, got: %d", config.AI.RequestsPerMinute)
	}

	if strings.TrimSpace(config.Server.Addr) == "" {
		return fmt.Errorf("server.addr must not be empty")
	}

	return nil
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

// AITimeout returns the per-call classification deadline.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// ProviderConfig returns the classifier provider settings. A disabled AI
// section selects the offline static provider.
func (c *Config) ProviderConfig(overflow string) classifier.ProviderConfig {
	provider := classifier.NormalizeProvider(c.AI.Provider)
	if !c.AI.Enabled {
		provider = classifier.ProviderStatic
	}
	return classifier.ProviderConfig{
		Provider:  provider,
		Model:     c.AI.Model,
		BaseURL:   c.AI.BaseURL,
		APIKeyEnv: c.AI.APIKeyEnv,
		Timeout:   c.AITimeout(),
		Overflow:  overflow,
	}
}

// CategorySet resolves the configured category profile.
func (c *Config) CategorySet() (*models.CategorySet, error) {
	if c.Categories.File != "" {
		return models.LoadCategorySet(c.Categories.File)
	}
	return models.BuiltinCategorySet(c.Categories.Profile)
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()
	logging.Configure(logger, config.Log.Level, config.Log.Format)
	return logger
}
