package aggregator

import (
	"fjacquet/expense-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Notices shown in place of views that cannot be computed
const (
	NoticeEmptyLedger   = "No expenses have been added yet."
	NoticeIncomeMissing = "Please enter your monthly after-tax income to see the 50/30/20 rule summary."
	NoticeNotBudgetRule = "The 50/30/20 rule summary is only available for the budget category profile."
)

// Summary bundles every view of a ledger snapshot for the presentation layer.
type Summary struct {
	Profile    string
	Count      int
	Total      decimal.Decimal
	ByCategory []CategoryTotal
	ByDate     []DateTotal
	History    []models.Expense
	Split      *Split
	Compliance *Compliance
	Notices    []string
}

// Aggregator computes summaries for one configured category set.
type Aggregator struct {
	set *models.CategorySet
}

// New creates an Aggregator bound to a category set.
func New(set *models.CategorySet) *Aggregator {
	return &Aggregator{set: set}
}

// CategorySet returns the set the aggregator was built with.
func (a *Aggregator) CategorySet() *models.CategorySet {
	return a.set
}

// Summarize computes all views of ledger. The budget split is included only
// when the category set carries the 50/30/20 labels and income is positive.
func (a *Aggregator) Summarize(ledger []models.Expense, income decimal.Decimal) Summary {
	summary := Summary{
		Count:      len(ledger),
		Total:      TotalSpend(ledger),
		ByCategory: CategoryTotals(ledger, a.set),
		ByDate:     SpendByDate(ledger),
		History:    SortedByDateDescending(ledger),
	}
	if a.set != nil {
		summary.Profile = a.set.Name
	}

	if len(ledger) == 0 {
		summary.Notices = append(summary.Notices, NoticeEmptyLedger)
	}

	switch {
	case a.set == nil || !a.set.IsBudgetRule():
		if income.IsPositive() {
			summary.Notices = append(summary.Notices, NoticeNotBudgetRule)
		}
	case !income.IsPositive():
		summary.Notices = append(summary.Notices, NoticeIncomeMissing)
	default:
		split, _ := BudgetSplit(ledger, income)
		compliance := ComplianceFlags(split)
		summary.Split = &split
		summary.Compliance = &compliance
	}

	return summary
}
