// Package ledger persists expense records to a flat CSV file with the columns
// Date, Amount, Category and Description.
package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fjacquet/expense-ledger/internal/apperror"
	"fjacquet/expense-ledger/internal/dateutils"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/validation"

	"github.com/gocarina/gocsv"
)

// DefaultPath is the ledger file used when none is configured.
const DefaultPath = "expenses.csv"

// Header is the column order of the ledger file.
var Header = []string{"Date", "Amount", "Category", "Description"}

// row is the on-disk shape of an expense.
type row struct {
	Date        string `csv:"Date"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Description string `csv:"Description"`
}

// Store reads and rewrites the ledger file. Appends hold an exclusive lock
// across the whole load-modify-save sequence.
type Store struct {
	path      string
	delimiter rune
	logger    logging.Logger
	mu        sync.Mutex
}

// NewStore creates a store for the CSV file at path.
func NewStore(path string, delimiter rune, logger logging.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Store{path: path, delimiter: delimiter, logger: logger}
}

// Path returns the ledger file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full ledger. A missing or empty file is an empty ledger.
func (s *Store) Load(ctx context.Context) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Append adds e to the end of the ledger and returns the new snapshot. The
// amount is rounded to the stored precision so the snapshot equals a reload.
func (s *Store) Append(ctx context.Context, e models.Expense) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.Amount = models.RoundAmount(e.Amount)

	expenses, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	expenses = append(expenses, e)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.save(expenses); err != nil {
		return nil, err
	}

	s.logger.Info("Expense appended to ledger",
		logging.Field{Key: logging.FieldFile, Value: s.path},
		logging.Field{Key: logging.FieldCategory, Value: e.Category},
		logging.Field{Key: logging.FieldCount, Value: len(expenses)},
	)
	return expenses, nil
}

func (s *Store) load(ctx context.Context) ([]models.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("Ledger file not found, starting empty", logging.Field{Key: logging.FieldFile, Value: s.path})
		return []models.Expense{}, nil
	}
	if err != nil {
		return nil, &apperror.StoreError{Path: s.path, Op: "open", Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close ledger file")
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, &apperror.StoreError{Path: s.path, Op: "stat", Err: err}
	}
	if err := validation.IsValidFilePermissions(info.Mode()); err != nil {
		s.logger.Warn("Ledger file is readable by other users",
			logging.Field{Key: logging.FieldFile, Value: s.path},
			logging.Field{Key: logging.FieldReason, Value: err.Error()},
		)
	}
	if info.Size() == 0 {
		return []models.Expense{}, nil
	}

	reader := csv.NewReader(file)
	reader.Comma = s.delimiter
	reader.TrimLeadingSpace = true

	var rows []row
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []models.Expense{}, nil
		}
		return nil, &apperror.StoreError{Path: s.path, Op: "parse", Err: err}
	}

	expenses := make([]models.Expense, 0, len(rows))
	for i, r := range rows {
		e, err := r.toExpense()
		if err != nil {
			// header is line 1
			return nil, &apperror.StoreError{Path: s.path, Op: "parse", Err: fmt.Errorf("line %d: %w", i+2, err)}
		}
		expenses = append(expenses, e)
	}

	s.logger.Debug("Ledger loaded",
		logging.Field{Key: logging.FieldFile, Value: s.path},
		logging.Field{Key: logging.FieldCount, Value: len(expenses)},
	)
	return expenses, nil
}

// save rewrites the whole ledger through a temporary file renamed into place.
func (s *Store) save(expenses []models.Expense) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return &apperror.StoreError{Path: s.path, Op: "mkdir", Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &apperror.StoreError{Path: s.path, Op: "create", Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmpName)
	}()

	rows := make([]row, len(expenses))
	for i, e := range expenses {
		rows[i] = fromExpense(e)
	}

	csvWriter := csv.NewWriter(tmp)
	csvWriter.Comma = s.delimiter
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		_ = tmp.Close()
		return &apperror.StoreError{Path: s.path, Op: "write", Err: err}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		_ = tmp.Close()
		return &apperror.StoreError{Path: s.path, Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &apperror.StoreError{Path: s.path, Op: "close", Err: err}
	}
	if err := os.Chmod(tmpName, models.PermissionLedgerFile); err != nil {
		return &apperror.StoreError{Path: s.path, Op: "chmod", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return &apperror.StoreError{Path: s.path, Op: "rename", Err: err}
	}
	return nil
}

func fromExpense(e models.Expense) row {
	return row{
		Date:        dateutils.ToISODate(e.Date),
		Amount:      models.FormatAmount(e.Amount),
		Category:    e.Category,
		Description: e.Description,
	}
}

func (r row) toExpense() (models.Expense, error) {
	date, err := dateutils.ParseDate(r.Date)
	if err != nil {
		return models.Expense{}, err
	}
	amount, err := models.ParseAmount(r.Amount)
	if err != nil {
		return models.Expense{}, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}
	return models.Expense{
		Date:        date,
		Amount:      amount,
		Category:    strings.TrimSpace(r.Category),
		Description: r.Description,
	}, nil
}
