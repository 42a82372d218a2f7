package add_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"fjacquet/expense-ledger/cmd/add"
	"fjacquet/expense-ledger/internal/apperror"
	"fjacquet/expense-ledger/internal/classifier"
	"fjacquet/expense-ledger/internal/config"
	"fjacquet/expense-ledger/internal/container"
	"fjacquet/expense-ledger/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCompleter struct {
	result classifier.CompletionResult
}

func (f fixedCompleter) Name() string { return "fixed" }
func (f fixedCompleter) Complete(context.Context, classifier.Prompt) classifier.CompletionResult {
	return f.result
}

func newContainer(t *testing.T, result classifier.CompletionResult) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Ledger.File = filepath.Join(t.TempDir(), "expenses.csv")
	cfg.Categories.Profile = "budget"
	cfg.AI.Provider = classifier.ProviderStatic
	cfg.AI.TimeoutSeconds = 5

	c, err := container.NewContainer(context.Background(), cfg,
		container.WithLogger(logging.NewMockLogger()),
		container.WithCompleter(fixedCompleter{result: result}),
	)
	require.NoError(t, err)
	return c
}

func TestAddCommand_Metadata(t *testing.T) {
	assert.Equal(t, "add", add.Cmd.Use)
	assert.Contains(t, add.Cmd.Short, "Add an expense")
	assert.NotNil(t, add.Cmd.RunE)
}

func TestAddCommand_Flags(t *testing.T) {
	flags := map[string]string{"date": "t", "amount": "a", "description": "d", "income": "i"}
	for name, shorthand := range flags {
		flag := add.Cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, shorthand, flag.Shorthand)
	}
	assert.Contains(t, add.Cmd.Flags().Lookup("description").Usage, "Expense description")
}

func TestRun_AddsExpense(t *testing.T) {
	c := newContainer(t, classifier.Success("Needs"))
	var out, errOut bytes.Buffer

	err := add.Run(context.Background(), &out, &errOut, c, add.Options{
		Date:        "2024-01-01",
		Amount:      "100",
		Description: "Rent",
	})

	require.NoError(t, err)
	assert.Equal(t, "Predicted Category: Needs\nExpense added successfully!\n", out.String())
	assert.Empty(t, errOut.String())

	loaded, err := c.GetStore().Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestRun_WithIncomePrintsSummary(t *testing.T) {
	c := newContainer(t, classifier.Success("Needs"))
	var out, errOut bytes.Buffer

	err := add.Run(context.Background(), &out, &errOut, c, add.Options{
		Date:        "2024-01-01",
		Amount:      "100",
		Description: "Rent",
		Income:      "300",
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Total Expenses: $100.00")
	assert.Contains(t, out.String(), "Needs: 33.33% of income")
}

func TestRun_ClassificationFailureWarns(t *testing.T) {
	c := newContainer(t, classifier.Failure(assert.AnError))
	var out, errOut bytes.Buffer

	err := add.Run(context.Background(), &out, &errOut, c, add.Options{Amount: "5", Description: "Coffee"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Predicted Category: Others")
	assert.Contains(t, errOut.String(), "Warning: Error with fixed API")
}

func TestRun_BlankDescription(t *testing.T) {
	c := newContainer(t, classifier.Success("Needs"))
	var out, errOut bytes.Buffer

	err := add.Run(context.Background(), &out, &errOut, c, add.Options{Amount: "5", Description: "  "})

	assert.ErrorIs(t, err, apperror.ErrBlankDescription)
	assert.Equal(t, "Warning: Please enter a description.\n", errOut.String())
	assert.Empty(t, out.String())
	assert.NoFileExists(t, c.GetStore().Path())
}

func TestRun_InvalidInput(t *testing.T) {
	c := newContainer(t, classifier.Success("Needs"))

	tests := []add.Options{
		{Date: "soon", Amount: "1", Description: "x"},
		{Amount: "one", Description: "x"},
		{Amount: "-1", Description: "x"},
		{Amount: "1", Description: "x", Income: "-10"},
	}
	for _, o := range tests {
		var out, errOut bytes.Buffer
		err := add.Run(context.Background(), &out, &errOut, c, o)
		assert.Error(t, err, "%+v", o)
	}
	assert.NoFileExists(t, c.GetStore().Path())
}
