// Package container provides dependency injection for the expense ledger.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"

	"fjacquet/expense-ledger/internal/aggregator"
	"fjacquet/expense-ledger/internal/classifier"
	"fjacquet/expense-ledger/internal/config"
	"fjacquet/expense-ledger/internal/ledger"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/report"
	"fjacquet/expense-ledger/internal/tracker"
)

// Container holds all application dependencies and provides methods to access them.
// All fields are private and can only be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	categorySet *models.CategorySet
	completer   classifier.Completer
	classifier  *classifier.Classifier
	store       *ledger.Store
	aggregator  *aggregator.Aggregator
	tracker     *tracker.Service
}

// Option overrides a dependency, mostly for tests.
type Option func(*options)

type options struct {
	logger    logging.Logger
	completer classifier.Completer
}

// WithLogger replaces the logger built from configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCompleter replaces the provider selected by configuration.
func WithCompleter(completer classifier.Completer) Option {
	return func(o *options) { o.completer = completer }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	set, err := cfg.CategorySet()
	if err != nil {
		return nil, fmt.Errorf("failed to load category set: %w", err)
	}

	completer := o.completer
	if completer == nil {
		providerCfg := cfg.ProviderConfig(set.Overflow)
		completer, err = classifier.NewCompleter(ctx, providerCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create AI provider: %w", err)
		}
		if providerCfg.NeedsAPIKey() && providerCfg.APIKey() == "" {
			logger.Warn("AI credential not set, expenses will be classified as overflow",
				logging.Field{Key: logging.FieldProvider, Value: providerCfg.Provider},
				logging.Field{Key: "api_key_env", Value: providerCfg.APIKeyEnv},
			)
		}
	}

	cls := classifier.New(set, completer, logger,
		classifier.WithTimeout(cfg.AITimeout()),
		classifier.WithRequestsPerMinute(cfg.AI.RequestsPerMinute),
	)
	store := ledger.NewStore(cfg.Ledger.File, cfg.Delimiter(), logger)
	agg := aggregator.New(set)

	logger.Info("Container initialized successfully",
		logging.Field{Key: logging.FieldProfile, Value: set.Name},
		logging.Field{Key: logging.FieldProvider, Value: completer.Name()},
		logging.Field{Key: logging.FieldModel, Value: cls.Model()},
		logging.Field{Key: logging.FieldFile, Value: store.Path()},
		logging.Field{Key: logging.FieldDelimiter, Value: cfg.CSV.Delimiter},
	)

	return &Container{
		logger:      logger,
		config:      cfg,
		categorySet: set,
		completer:   completer,
		classifier:  cls,
		store:       store,
		aggregator:  agg,
		tracker:     tracker.NewService(cls, store, agg, logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCategorySet returns the active category set.
func (c *Container) GetCategorySet() *models.CategorySet {
	return c.categorySet
}

// GetClassifier returns the classifier.
func (c *Container) GetClassifier() *classifier.Classifier {
	return c.classifier
}

// GetStore returns the ledger store.
func (c *Container) GetStore() *ledger.Store {
	return c.store
}

// GetAggregator returns the aggregator bound to the active category set.
func (c *Container) GetAggregator() *aggregator.Aggregator {
	return c.aggregator
}

// GetTracker returns the application service.
func (c *Container) GetTracker() *tracker.Service {
	return c.tracker
}

// NewReportGenerator creates a report generator sharing the container's logger.
func (c *Container) NewReportGenerator(withHistory bool) *report.Generator {
	return report.NewGenerator(c.logger, withHistory)
}

// Close releases provider resources.
func (c *Container) Close() error {
	if closer, ok := c.completer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close AI provider: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
