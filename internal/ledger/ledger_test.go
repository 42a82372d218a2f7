package ledger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"fjacquet/expense-ledger/internal/apperror"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, delimiter rune) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "expenses.csv"), delimiter, logging.NewMockLogger())
}

func expense(date, amount, category, description string) models.Expense {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Expense{
		Date:        d,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: description,
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	store := newTestStore(t, ',')

	expenses, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, expenses)
	assert.Empty(t, expenses)
}

func TestLoad_EmptyFileIsEmpty(t *testing.T) {
	store := newTestStore(t, ',')
	require.NoError(t, os.WriteFile(store.Path(), nil, 0600))

	expenses, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestAppend_WritesHeaderAndRows(t *testing.T) {
	store := newTestStore(t, ',')
	ctx := context.Background()

	_, err := store.Append(ctx, expense("2024-01-01", "100", models.CategoryNeeds, "Rent"))
	require.NoError(t, err)
	snapshot, err := store.Append(ctx, expense("2024-01-01", "50.5", models.CategoryWants, "Dinner, with friends"))
	require.NoError(t, err)
	require.Len(t, snapshot, 2)

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Amount,Category,Description", lines[0])
	assert.Equal(t, "2024-01-01,100.00,Needs,Rent", lines[1])
	assert.Equal(t, `2024-01-01,50.50,Wants,"Dinner, with friends"`, lines[2])
}

func TestAppend_RoundTripPreservesOrder(t *testing.T) {
	store := newTestStore(t, ';')
	ctx := context.Background()

	records := []models.Expense{
		expense("2024-01-03", "12.34", models.CategoryNeeds, "Bus; return"),
		expense("2024-01-01", "0.10", models.CategoryOthers, "Gum"),
		expense("2024-01-02", "200", models.CategorySavings, "ETF"),
	}
	for _, r := range records {
		_, err := store.Append(ctx, r)
		require.NoError(t, err)
	}

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(records))
	for i := range records {
		assert.True(t, records[i].Date.Equal(loaded[i].Date))
		assert.True(t, records[i].Amount.Equal(loaded[i].Amount))
		assert.Equal(t, records[i].Category, loaded[i].Category)
		assert.Equal(t, records[i].Description, loaded[i].Description)
	}
}

func TestLoad_AcceptsDatetimeColumn(t *testing.T) {
	store := newTestStore(t, ',')
	data := "Date,Amount,Category,Description\n2024-02-03 00:00:00,9.99,Wants,Streaming\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(data), 0600))

	expenses, err := store.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "2024-02-03", expenses[0].Date.Format("2006-01-02"))
	assert.Equal(t, "9.99", expenses[0].Amount.StringFixed(2))
}

func TestLoad_MalformedRow(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad date", "Date,Amount,Category,Description\nyesterday,1,Needs,x\n"},
		{"bad amount", "Date,Amount,Category,Description\n2024-01-01,abc,Needs,x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, ',')
			require.NoError(t, os.WriteFile(store.Path(), []byte(tt.data), 0600))

			_, err := store.Load(context.Background())

			require.Error(t, err)
			var storeErr *apperror.StoreError
			require.ErrorAs(t, err, &storeErr)
			assert.Equal(t, "parse", storeErr.Op)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestAppend_FailedLoadLeavesFileUntouched(t *testing.T) {
	store := newTestStore(t, ',')
	data := "Date,Amount,Category,Description\nnot-a-date,1,Needs,x\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(data), 0600))

	_, err := store.Append(context.Background(), expense("2024-01-01", "1", models.CategoryNeeds, "y"))
	require.Error(t, err)

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, data, string(content))
}

func TestAppend_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.csv")
	store := NewStore(path, ',', logging.NewMockLogger())

	_, err := store.Append(context.Background(), expense("2024-01-01", "1", models.CategoryNeeds, "x"))

	require.NoError(t, err)
	assert.FileExists(t, path)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestAppend_ConcurrentWritersLoseNothing(t *testing.T) {
	store := newTestStore(t, ',')
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Append(ctx, expense("2024-01-01", "1", models.CategoryNeeds, "x"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, writers)
}

func TestAppend_CancelledContext(t *testing.T) {
	store := newTestStore(t, ',')
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Append(ctx, expense("2024-01-01", "1", models.CategoryNeeds, "x"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, store.Path())
}

func TestNewStore_Defaults(t *testing.T) {
	store := NewStore("", 0, nil)
	assert.Equal(t, DefaultPath, store.Path())
	assert.Equal(t, ',', store.delimiter)
}

func TestAppend_WritesOwnerOnlyFile(t *testing.T) {
	store := newTestStore(t, ',')

	_, err := store.Append(context.Background(), expense("2024-01-01", "5", "Needs", "Bus"))
	require.NoError(t, err)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(models.PermissionLedgerFile), info.Mode().Perm())
}

func TestLoad_WarnsOnWorldReadableFile(t *testing.T) {
	logger := logging.NewMockLogger()
	path := filepath.Join(t.TempDir(), "expenses.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Amount,Category,Description\n2024-01-01,5.00,Needs,Bus\n"), 0600))
	require.NoError(t, os.Chmod(path, 0644))
	store := NewStore(path, ',', logger)

	expenses, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, expenses, 1)
	assert.True(t, logger.HasEntry("WARN", "Ledger file is readable by other users"))
}

func TestAppend_SnapshotMatchesReloadForSubCentAmounts(t *testing.T) {
	store := newTestStore(t, ',')
	ctx := context.Background()

	snapshot, err := store.Append(ctx, expense("2024-01-01", "10.005", models.CategoryNeeds, "Bus"))
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "10.01", snapshot[0].Amount.StringFixed(2))

	reloaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
	assert.True(t, snapshot[0].Amount.Equal(reloaded[0].Amount),
		"snapshot %s, reload %s", snapshot[0].Amount, reloaded[0].Amount)

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(content), "2024-01-01,10.01,Needs,Bus")
}
