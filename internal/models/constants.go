// Package models provides the data structures used throughout the application.
package models

// Budget (50/30/20) category labels
const (
	CategoryNeeds   = "Needs"
	CategoryWants   = "Wants"
	CategorySavings = "Savings/Debt Repayment"
)

// Spending-type category labels
const (
	CategoryGrocery       = "Grocery"
	CategoryEducation     = "Education"
	CategoryCarExpenses   = "Car Expenses"
	CategoryUtilities     = "Utilities"
	CategoryEntertainment = "Entertainment"
	CategoryDining        = "Dining"
)

// CategoryOthers is the overflow label assigned when classification fails or
// returns something outside the configured set.
const CategoryOthers = "Others"

// Built-in category profile names
const (
	ProfileBudget   = "budget"
	ProfileSpending = "spending"
)

// File permissions
const (
	PermissionLedgerFile = 0600
	PermissionDirectory  = 0750
)
