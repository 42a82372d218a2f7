// Package classifier maps free-text expense descriptions to a label of the
// configured category set using an external completion provider.
package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/expense-ledger/internal/apperror"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"

	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single completion call.
const DefaultTimeout = 30 * time.Second

// Classification is the outcome of classifying one description. Label is
// always a member of the category set or its overflow label.
type Classification struct {
	Label    string
	Raw      string
	Fallback bool
	Warning  string
	Err      error
}

// Classifier assigns category labels to descriptions.
type Classifier struct {
	set       *models.CategorySet
	completer Completer
	logger    logging.Logger
	timeout   time.Duration
	limiter   *rate.Limiter
}

// Option customises a Classifier.
type Option func(*Classifier)

// WithTimeout sets the per-call deadline. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Classifier) {
		c.timeout = d
	}
}

// WithRequestsPerMinute paces outbound calls. Zero or negative disables pacing.
func WithRequestsPerMinute(n int) Option {
	return func(c *Classifier) {
		if n <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
	}
}

// New creates a Classifier for the given category set and provider.
func New(set *models.CategorySet, completer Completer, logger logging.Logger, opts ...Option) *Classifier {
	if completer == nil {
		completer = NewStaticCompleter(set.Overflow)
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	c := &Classifier{
		set:       set,
		completer: completer,
		logger:    logger,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the name of the underlying completion provider.
func (c *Classifier) Provider() string {
	return c.completer.Name()
}

// Model returns the model the completer sends prompts to, or "" when the
// completer is not backed by a named model.
func (c *Classifier) Model() string {
	if m, ok := c.completer.(interface{ Model() string }); ok {
		return m.Model()
	}
	return ""
}

// CategorySet returns the set labels are drawn from.
func (c *Classifier) CategorySet() *models.CategorySet {
	return c.set
}

// Classify returns the label for description. It never fails: provider errors
// and unrecognised responses both resolve to the overflow label with a warning.
func (c *Classifier) Classify(ctx context.Context, description string) Classification {
	log := c.logger.WithFields(
		logging.Field{Key: logging.FieldProvider, Value: c.completer.Name()},
		logging.Field{Key: logging.FieldModel, Value: c.Model()},
		logging.Field{Key: logging.FieldDescription, Value: description},
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return c.fallbackOnError(log, description, err)
		}
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	result := c.completer.Complete(callCtx, BuildPrompt(c.set, description))
	log = log.WithField(logging.FieldDuration, time.Since(start).Milliseconds())

	if result.Failed() {
		return c.fallbackOnError(log, description, result.Err)
	}

	raw := strings.TrimSpace(result.Text)
	if label, ok := c.set.Match(raw); ok {
		log.Debug("Description classified", logging.Field{Key: logging.FieldCategory, Value: label})
		return Classification{Label: label, Raw: raw}
	}
	if raw == c.set.Overflow {
		log.Debug("Description classified as overflow", logging.Field{Key: logging.FieldCategory, Value: raw})
		return Classification{Label: c.set.Overflow, Raw: raw}
	}

	warning := fmt.Sprintf("Unrecognised category %q from %s, using %s.", raw, c.completer.Name(), c.set.Overflow)
	log.Warn("Classification response not in category set",
		logging.Field{Key: "response", Value: raw},
		logging.Field{Key: logging.FieldCategory, Value: c.set.Overflow},
	)
	return Classification{
		Label:    c.set.Overflow,
		Raw:      raw,
		Fallback: true,
		Warning:  warning,
	}
}

func (c *Classifier) fallbackOnError(log logging.Logger, description string, err error) Classification {
	classErr := &apperror.ClassificationError{
		Description: description,
		Provider:    c.completer.Name(),
		Err:         err,
	}
	log.WithError(err).Warn("Classification failed, using overflow category",
		logging.Field{Key: logging.FieldCategory, Value: c.set.Overflow},
	)
	return Classification{
		Label:    c.set.Overflow,
		Fallback: true,
		Warning:  fmt.Sprintf("Error with %s API: %v", c.completer.Name(), err),
		Err:      classErr,
	}
}
