// Package tracker composes classification, persistence and aggregation into
// the operations a presentation layer exposes to the user.
package tracker

import (
	"context"
	"fmt"

	"fjacquet/expense-ledger/internal/aggregator"
	"fjacquet/expense-ledger/internal/classifier"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// MessageAdded confirms a successful append.
const MessageAdded = "Expense added successfully!"

// Classifier assigns a category label to a description.
type Classifier interface {
	Classify(ctx context.Context, description string) classifier.Classification
}

// Store persists the ledger.
type Store interface {
	Load(ctx context.Context) ([]models.Expense, error)
	Append(ctx context.Context, e models.Expense) ([]models.Expense, error)
	Path() string
}

// AddResult describes the outcome of adding one expense.
type AddResult struct {
	Expense        models.Expense
	Classification classifier.Classification
	Ledger         []models.Expense
	Warnings       []string
	Message        string
}

// Service runs the add, history and summary flows.
type Service struct {
	classifier Classifier
	store      Store
	aggregator *aggregator.Aggregator
	logger     logging.Logger
}

// NewService wires a Service.
func NewService(c Classifier, store Store, agg *aggregator.Aggregator, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Service{
		classifier: c,
		store:      store,
		aggregator: agg,
		logger:     logger,
	}
}

// CategorySet returns the active category set.
func (s *Service) CategorySet() *models.CategorySet {
	return s.aggregator.CategorySet()
}

// Classify returns the label the classifier assigns to description without
// recording anything.
func (s *Service) Classify(ctx context.Context, description string) classifier.Classification {
	return s.classifier.Classify(ctx, description)
}

// AddExpense validates, classifies and appends one expense. A blank description
// is rejected before any classification call. Classification problems never
// abort the append; they are returned as warnings.
func (s *Service) AddExpense(ctx context.Context, input models.NewExpense) (AddResult, error) {
	if err := input.ValidateInput(); err != nil {
		s.logger.Warn("Rejected expense input", logging.Field{Key: logging.FieldReason, Value: err.Error()})
		return AddResult{}, err
	}

	classification := s.classifier.Classify(ctx, input.Description)
	record := input.WithCategory(classification.Label)
	if err := record.Validate(s.CategorySet()); err != nil {
		return AddResult{}, fmt.Errorf("invalid expense record: %w", err)
	}

	snapshot, err := s.store.Append(ctx, record)
	if err != nil {
		s.logger.WithError(err).Error("Failed to append expense",
			logging.Field{Key: logging.FieldFile, Value: s.store.Path()},
		)
		return AddResult{}, fmt.Errorf("failed to save expense: %w", err)
	}

	result := AddResult{
		Expense:        record,
		Classification: classification,
		Ledger:         snapshot,
		Message:        MessageAdded,
	}
	if classification.Warning != "" {
		result.Warnings = append(result.Warnings, classification.Warning)
	}

	s.logger.Info("Expense added",
		logging.Field{Key: logging.FieldCategory, Value: record.Category},
		logging.Field{Key: logging.FieldCount, Value: len(snapshot)},
	)
	return result, nil
}

// History returns the ledger most recent first.
func (s *Service) History(ctx context.Context) ([]models.Expense, error) {
	ledger, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return aggregator.SortedByDateDescending(ledger), nil
}

// Summary loads the ledger and computes every aggregate view for income.
func (s *Service) Summary(ctx context.Context, income decimal.Decimal) (aggregator.Summary, error) {
	ledger, err := s.store.Load(ctx)
	if err != nil {
		return aggregator.Summary{}, fmt.Errorf("failed to load ledger: %w", err)
	}
	return s.aggregator.Summarize(ledger, income), nil
}
