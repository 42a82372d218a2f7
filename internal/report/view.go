// Package report renders ledger summaries for people and machines.
package report

import (
	"fjacquet/expense-ledger/internal/aggregator"
	"fjacquet/expense-ledger/internal/dateutils"
	"fjacquet/expense-ledger/internal/models"
)

// Compliance messages shown next to each budget bucket
const (
	MessageWithin        = "Within recommended percentage."
	MessageExceeds       = "Exceeds recommended percentage."
	MessageMeetsOrExceed = "Meets or exceeds recommended percentage."
	MessageBelow         = "Below recommended percentage."
)

// View is the display form of a summary. Amounts are pre-formatted strings.
type View struct {
	Profile    string       `json:"profile" yaml:"profile"`
	Count      int          `json:"count" yaml:"count"`
	Total      string       `json:"total" yaml:"total"`
	ByCategory []AmountRow  `json:"by_category" yaml:"by_category"`
	ByDate     []AmountRow  `json:"by_date" yaml:"by_date"`
	History    []ExpenseRow `json:"history,omitempty" yaml:"history,omitempty"`
	Budget     *BudgetView  `json:"budget,omitempty" yaml:"budget,omitempty"`
	Notices    []string     `json:"notices,omitempty" yaml:"notices,omitempty"`
}

// AmountRow is one labelled total.
type AmountRow struct {
	Label  string `json:"label" yaml:"label"`
	Amount string `json:"amount" yaml:"amount"`
}

// ExpenseRow is one ledger record.
type ExpenseRow struct {
	Date        string `json:"date" yaml:"date"`
	Amount      string `json:"amount" yaml:"amount"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
}

// BudgetView is the 50/30/20 section of a report.
type BudgetView struct {
	Income string      `json:"income" yaml:"income"`
	Rows   []BudgetRow `json:"rows" yaml:"rows"`
}

// BudgetRow is one bucket of the budget split with its verdict.
type BudgetRow struct {
	Category    string `json:"category" yaml:"category"`
	Total       string `json:"total" yaml:"total"`
	Percentage  string `json:"percentage" yaml:"percentage"`
	Recommended string `json:"recommended" yaml:"recommended"`
	Compliant   bool   `json:"compliant" yaml:"compliant"`
	Message     string `json:"message" yaml:"message"`
}

// NewExpenseRow formats one record.
func NewExpenseRow(e models.Expense) ExpenseRow {
	return ExpenseRow{
		Date:        dateutils.ToISODate(e.Date),
		Amount:      models.FormatAmount(e.Amount),
		Category:    e.Category,
		Description: e.Description,
	}
}

// NewExpenseRows formats a ledger in its given order.
func NewExpenseRows(ledger []models.Expense) []ExpenseRow {
	rows := make([]ExpenseRow, len(ledger))
	for i, e := range ledger {
		rows[i] = NewExpenseRow(e)
	}
	return rows
}

// NewView converts a summary. History is included only when withHistory is set.
func NewView(s aggregator.Summary, withHistory bool) View {
	v := View{
		Profile:    s.Profile,
		Count:      s.Count,
		Total:      models.FormatCurrency(s.Total),
		ByCategory: make([]AmountRow, 0, len(s.ByCategory)),
		ByDate:     make([]AmountRow, 0, len(s.ByDate)),
		Notices:    s.Notices,
	}
	for _, ct := range s.ByCategory {
		v.ByCategory = append(v.ByCategory, AmountRow{Label: ct.Category, Amount: models.FormatAmount(ct.Amount)})
	}
	for _, dt := range s.ByDate {
		v.ByDate = append(v.ByDate, AmountRow{Label: dateutils.ToISODate(dt.Date), Amount: models.FormatAmount(dt.Amount)})
	}
	if withHistory {
		v.History = NewExpenseRows(s.History)
	}
	if s.Split != nil && s.Compliance != nil {
		v.Budget = newBudgetView(*s.Split, *s.Compliance)
	}
	return v
}

func newBudgetView(split aggregator.Split, c aggregator.Compliance) *BudgetView {
	row := func(label string, share aggregator.Share, limit string, ok bool, pass, fail string) BudgetRow {
		msg := fail
		if ok {
			msg = pass
		}
		return BudgetRow{
			Category:    label,
			Total:       models.FormatAmount(share.Total),
			Percentage:  share.Percent.StringFixed(aggregator.PercentPlaces),
			Recommended: limit,
			Compliant:   ok,
			Message:     msg,
		}
	}

	return &BudgetView{
		Income: models.FormatCurrency(split.Income),
		Rows: []BudgetRow{
			row(models.CategoryNeeds, split.Needs, aggregator.NeedsLimit.String(), c.NeedsOK, MessageWithin, MessageExceeds),
			row(models.CategoryWants, split.Wants, aggregator.WantsLimit.String(), c.WantsOK, MessageWithin, MessageExceeds),
			row(models.CategorySavings, split.Savings, aggregator.SavingsTarget.String(), c.SavingsOK, MessageMeetsOrExceed, MessageBelow),
		},
	}
}
