// Package aggregator computes the reported views of a ledger: totals, spend per
// category and per date, and the 50/30/20 budget split with its compliance flags.
//
// Every function works on a snapshot and never mutates it or performs I/O.
package aggregator

import (
	"sort"
	"time"

	"fjacquet/expense-ledger/internal/dateutils"
	"fjacquet/expense-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// PercentPlaces is the precision percentages are rounded to before they are
// displayed or compared against the budget thresholds.
const PercentPlaces = 2

// 50/30/20 thresholds, in percent of income
var (
	NeedsLimit    = decimal.NewFromInt(50)
	WantsLimit    = decimal.NewFromInt(30)
	SavingsTarget = decimal.NewFromInt(20)
)

var hundred = decimal.NewFromInt(100)

// CategoryTotal is the spend for one category label.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// DateTotal is the spend for one calendar date.
type DateTotal struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Share is one bucket of the budget split.
type Share struct {
	Total   decimal.Decimal
	Percent decimal.Decimal // of income, rounded to PercentPlaces
}

// Split holds the percentage-of-income view for the three budget buckets.
// Spend under any other label is not part of any bucket.
type Split struct {
	Income  decimal.Decimal
	Needs   Share
	Wants   Share
	Savings Share
}

// Compliance holds the 50/30/20 verdict per bucket.
type Compliance struct {
	NeedsOK   bool
	WantsOK   bool
	SavingsOK bool
}

// TotalSpend returns the sum of all amounts. An empty ledger sums to zero.
func TotalSpend(ledger []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range ledger {
		total = total.Add(e.Amount)
	}
	return total
}

// SpendByCategory sums amounts per category label. Labels without records are
// absent from the result.
func SpendByCategory(ledger []models.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range ledger {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// CategoryTotals returns SpendByCategory as a slice ordered by the category
// set's labels, followed by any labels outside the set in alphabetical order.
func CategoryTotals(ledger []models.Expense, set *models.CategorySet) []CategoryTotal {
	byCategory := SpendByCategory(ledger)
	result := make([]CategoryTotal, 0, len(byCategory))

	if set != nil {
		for _, label := range set.AllLabels() {
			if amount, ok := byCategory[label]; ok {
				result = append(result, CategoryTotal{Category: label, Amount: amount})
				delete(byCategory, label)
			}
		}
	}

	rest := make([]string, 0, len(byCategory))
	for label := range byCategory {
		rest = append(rest, label)
	}
	sort.Strings(rest)
	for _, label := range rest {
		result = append(result, CategoryTotal{Category: label, Amount: byCategory[label]})
	}

	return result
}

// SpendByDate sums amounts per calendar date, in chronological order.
func SpendByDate(ledger []models.Expense) []DateTotal {
	index := make(map[time.Time]int)
	result := make([]DateTotal, 0)

	for _, e := range ledger {
		day := dateutils.TruncateToDay(e.Date)
		if i, ok := index[day]; ok {
			result[i].Amount = result[i].Amount.Add(e.Amount)
			continue
		}
		index[day] = len(result)
		result = append(result, DateTotal{Date: day, Amount: e.Amount})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

// SortedByDateDescending returns a copy of the ledger ordered most recent first.
// Records sharing a date keep their insertion order.
func SortedByDateDescending(ledger []models.Expense) []models.Expense {
	sorted := make([]models.Expense, len(ledger))
	copy(sorted, ledger)

	sort.SliceStable(sorted, func(i, j int) bool {
		return dateutils.CompareDates(sorted[i].Date, sorted[j].Date) > 0
	})
	return sorted
}

// BudgetSplit computes each budget bucket as a percentage of income.
// It returns false, and no split, when income is not positive.
func BudgetSplit(ledger []models.Expense, income decimal.Decimal) (Split, bool) {
	if !income.IsPositive() {
		return Split{}, false
	}

	byCategory := SpendByCategory(ledger)
	share := func(label string) Share {
		total := byCategory[label]
		return Share{
			Total:   total,
			Percent: total.Div(income).Mul(hundred).Round(PercentPlaces),
		}
	}

	return Split{
		Income:  income,
		Needs:   share(models.CategoryNeeds),
		Wants:   share(models.CategoryWants),
		Savings: share(models.CategorySavings),
	}, true
}

// ComplianceFlags applies the 50/30/20 rule. Boundary values are compliant.
func ComplianceFlags(split Split) Compliance {
	return Compliance{
		NeedsOK:   split.Needs.Percent.LessThanOrEqual(NeedsLimit),
		WantsOK:   split.Wants.Percent.LessThanOrEqual(WantsLimit),
		SavingsOK: split.Savings.Percent.GreaterThanOrEqual(SavingsTarget),
	}
}
