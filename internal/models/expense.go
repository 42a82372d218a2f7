package models

import (
	"strings"
	"time"

	"fjacquet/expense-ledger/internal/apperror"

	"github.com/shopspring/decimal"
)

// Expense is a single ledger record. Records are created once and never mutated.
type Expense struct {
	Date        time.Time       `json:"date" yaml:"date"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Category    string          `json:"category" yaml:"category"`
	Description string          `json:"description" yaml:"description"`
}

// NewExpense is the user-supplied part of an expense, before classification.
type NewExpense struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
}

// ValidateInput checks the fields a user supplies before the expense is
// classified. A blank description is reported with apperror.ErrBlankDescription.
func (n NewExpense) ValidateInput() error {
	if strings.TrimSpace(n.Description) == "" {
		return &apperror.ValidationError{
			Field:  "description",
			Reason: "must not be blank",
			Err:    apperror.ErrBlankDescription,
		}
	}
	if n.Date.IsZero() {
		return &apperror.ValidationError{Field: "date", Reason: "is required"}
	}
	if n.Amount.IsNegative() {
		return &apperror.ValidationError{
			Field:  "amount",
			Value:  n.Amount.String(),
			Reason: "must not be negative",
		}
	}
	return nil
}

// WithCategory builds the ledger record for this input. The amount is rounded
// to AmountPlaces so the record matches what the ledger persists.
func (n NewExpense) WithCategory(category string) Expense {
	return Expense{
		Date:        n.Date,
		Amount:      RoundAmount(n.Amount),
		Category:    category,
		Description: n.Description,
	}
}

// Validate checks the record invariants against the active category set.
func (e Expense) Validate(set *CategorySet) error {
	input := NewExpense{Date: e.Date, Amount: e.Amount, Description: e.Description}
	if err := input.ValidateInput(); err != nil {
		return err
	}
	if set != nil && !set.Contains(e.Category) {
		return &apperror.ValidationError{
			Field:  "category",
			Value:  e.Category,
			Reason: "not part of category set " + set.Name,
		}
	}
	return nil
}
