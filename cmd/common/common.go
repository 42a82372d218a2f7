// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/expense-ledger/internal/classifier"
	"fjacquet/expense-ledger/internal/dateutils"
	"fjacquet/expense-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// WarningBlankDescription is shown when an expense has no description.
const WarningBlankDescription = "Please enter a description."

// ParseIncome parses the --income flag. Empty means no income.
func ParseIncome(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	income, err := models.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid income: %w", err)
	}
	if income.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid income: must not be negative")
	}
	return income, nil
}

// ParseDateFlag parses a --date flag. Empty means today.
func ParseDateFlag(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return dateutils.Today(), nil
	}
	return dateutils.ParseDate(raw)
}

// PrintClassification writes the predicted category and any warning.
func PrintClassification(out, errOut io.Writer, c classifier.Classification) {
	PrintWarnings(errOut, c.Warning)
	_, _ = fmt.Fprintf(out, "Predicted Category: %s\n", c.Label)
}

// PrintWarnings writes each non-empty warning on its own line.
func PrintWarnings(w io.Writer, warnings ...string) {
	for _, warning := range warnings {
		if warning == "" {
			continue
		}
		_, _ = fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}
