package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is prefixed to amounts rendered for display.
const CurrencySymbol = "$"

// AmountPlaces is the precision amounts are stored and displayed with.
const AmountPlaces = 2

var amountReplacer = strings.NewReplacer(
	" ", "",
	"$", "",
	"€", "",
	"CHF", "",
	"EUR", "",
	"USD", "",
	"'", "",
)

// ParseAmount parses a user or ledger supplied amount into a decimal.
// Currency symbols, spaces and apostrophe thousand separators are ignored and a
// comma is accepted as the decimal separator.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	clean := amountReplacer.Replace(strings.TrimSpace(amountStr))
	clean = strings.ReplaceAll(clean, ",", ".")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	dec, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", amountStr, err)
	}
	return dec, nil
}

// RoundAmount rounds an amount to AmountPlaces, half away from zero.
// It is the value the ledger file will hold.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}

// FormatAmount renders an amount with two decimal places, e.g. "150.00".
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}

// FormatCurrency renders an amount for display, e.g. "$150.00".
func FormatCurrency(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(AmountPlaces)
}
