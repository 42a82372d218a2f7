package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetCategorySet(t *testing.T) {
	set := BudgetCategorySet()

	assert.Equal(t, []string{CategoryNeeds, CategoryWants, CategorySavings}, set.Labels())
	assert.Equal(t, []string{CategoryNeeds, CategoryWants, CategorySavings, CategoryOthers}, set.AllLabels())
	assert.True(t, set.IsBudgetRule())
	assert.True(t, set.Contains(CategoryOthers))
	assert.False(t, set.Contains("Grocery"))
}

func TestSpendingCategorySet_OverflowIsConfigured(t *testing.T) {
	set := SpendingCategorySet()

	assert.Len(t, set.Labels(), 7)
	assert.Equal(t, set.Labels(), set.AllLabels(), "overflow must not be listed twice")
	assert.False(t, set.IsBudgetRule())

	label, ok := set.Match(" Others\n")
	assert.True(t, ok)
	assert.Equal(t, CategoryOthers, label)
}

func TestCategorySet_Match(t *testing.T) {
	set := BudgetCategorySet()

	tests := []struct {
		raw       string
		wantLabel string
		wantOK    bool
	}{
		{"Needs", CategoryNeeds, true},
		{"  Wants \n", CategoryWants, true},
		{"Savings/Debt Repayment", CategorySavings, true},
		{"needs", "", false},
		{"Needs.", "", false},
		{"Category: Needs", "", false},
		{"Others", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			label, ok := set.Match(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestNewCategorySet(t *testing.T) {
	set, err := NewCategorySet("custom", "", []CategoryConfig{{Name: " Rent "}, {Name: "Fun"}})
	require.NoError(t, err)
	assert.Equal(t, CategoryOthers, set.Overflow)
	assert.Equal(t, []string{"Rent", "Fun"}, set.Labels())

	_, err = NewCategorySet("empty", "", nil)
	assert.Error(t, err)

	_, err = NewCategorySet("dup", "", []CategoryConfig{{Name: "A"}, {Name: "A"}})
	assert.Error(t, err)

	_, err = NewCategorySet("blank", "", []CategoryConfig{{Name: "  "}})
	assert.Error(t, err)
}

func TestBuiltinCategorySet(t *testing.T) {
	set, err := BuiltinCategorySet("Spending")
	require.NoError(t, err)
	assert.Equal(t, ProfileSpending, set.Name)

	set, err = BuiltinCategorySet("")
	require.NoError(t, err)
	assert.Equal(t, ProfileBudget, set.Name)

	_, err = BuiltinCategorySet("quarterly")
	assert.Error(t, err)
}

func TestLoadCategorySet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yaml")
	content := `name: household
overflow: Misc
categories:
  - name: Housing
    description: Rent and mortgage
  - name: Food
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	set, err := LoadCategorySet(path)
	require.NoError(t, err)
	assert.Equal(t, "household", set.Name)
	assert.Equal(t, "Misc", set.Overflow)
	assert.Equal(t, []string{"Housing", "Food", "Misc"}, set.AllLabels())
	assert.Equal(t, "Rent and mortgage", set.Categories[0].Description)

	_, err = LoadCategorySet(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("categories: [::"), 0600))
	_, err = LoadCategorySet(path)
	assert.Error(t, err)
}
