package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"fjacquet/expense-ledger/internal/aggregator"
	"fjacquet/expense-ledger/internal/classifier"
	"fjacquet/expense-ledger/internal/ledger"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/report"
	"fjacquet/expense-ledger/internal/tracker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type keywordCompleter struct {
	err error
}

func (k keywordCompleter) Name() string { return "keyword" }

func (k keywordCompleter) Complete(_ context.Context, p classifier.Prompt) classifier.CompletionResult {
	if k.err != nil {
		return classifier.Failure(k.err)
	}
	switch {
	case bytes.Contains([]byte(p.User), []byte("Rent")):
		return classifier.Success("Needs")
	case bytes.Contains([]byte(p.User), []byte("Movie")):
		return classifier.Success("Wants")
	default:
		return classifier.Success("I am not sure")
	}
}

func newTestRouter(t *testing.T, completer classifier.Completer) (*gin.Engine, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	set := models.BudgetCategorySet()
	store := ledger.NewStore(filepath.Join(t.TempDir(), "expenses.csv"), ',', logger)
	svc := tracker.NewService(classifier.New(set, completer, logger), store, aggregator.New(set), logger)
	return NewRouter(svc, logger, Options{AllowedOrigins: []string{"http://localhost:3000"}}), logger
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, logger := newTestRouter(t, keywordCompleter{})

	w := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	assert.True(t, logger.HasEntry("INFO", "Request handled"))
}

func TestRequestID_PropagatesCallerValue(t *testing.T) {
	router, _ := newTestRouter(t, keywordCompleter{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestCORS_AllowedOrigin(t *testing.T) {
	router, _ := newTestRouter(t, keywordCompleter{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListCategories(t *testing.T) {
	router, _ := newTestRouter(t, keywordCompleter{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/categories", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CategoriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "budget", resp.Profile)
	assert.Equal(t, "Others", resp.Overflow)
	assert.Equal(t, []string{"Needs", "Wants", "Savings/Debt Repayment", "Others"}, resp.Labels)
	assert.Len(t, resp.Categories, 3)
}

func TestClassify(t *testing.T) {
	router, _ := newTestRouter(t, keywordCompleter{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/classify", ClassifyRequest{Description: "Rent"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp ClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Needs", resp.Category)
	assert.False(t, resp.Fallback)
	assert.Empty(t, resp.Warnings)

	w = doJSON(t, router, http.MethodPost, "/api/v1/classify", ClassifyRequest{Description: "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), WarningBlankDescription)
}

func TestAddExpense(t *testing.T) {
	router, _ := newTestRouter(t, keywordCompleter{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/expenses", map[string]interface{}{
		"date":        "2024-01-01",
		"amount":      100,
		"description": "Rent",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp AddExpenseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Needs", resp.Category)
	assert.Equal(t, report.ExpenseRow{Date: "2024-01-01", Amount: "100.00", Category: "Needs", Description: "Rent"}, resp.Expense)
	assert.Equal(t, tracker.MessageAdded, resp.Message)
	assert.Empty(t, resp.Warnings)
}

func TestAddExpense_FallbackReturnsWarnings(t *testing.T) {
	router, _ := newTestRouter(t, keywordCompleter{err: errors.New("timeout")})

	w := doJSON(t, router, http.MethodPost, "/api/v1/expenses", map[string]interface{}{
		"date":        "2024-01-01",
		"amount":      "12.50",
		"description": "Coffee",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp AddExpenseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Others", resp.Category)
	assert.True(t, resp.Fallback)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "timeout")
}

func TestAddExpense_Validation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
		code int
	}{
		{"blank description", map[string]interface{}{"date": "2024-01-01", "amount": 1, "description": " "}, http.StatusUnprocessableEntity},
		{"bad date", map[string]interface{}{"date": "someday", "amount": 1, "description": "x"}, http.StatusBadRequest},
		{"negative amount", map[string]interface{}{"date": "2024-01-01", "amount": -1, "description": "x"}, http.StatusBadRequest},
		{"bad amount", map[string]interface{}{"date": "2024-01-01", "amount": "ten", "description": "x"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t, keywordCompleter{})
			w := doJSON(t, router, http.MethodPost, "/api/v1/expenses", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestListExpensesAndSummary(t *testing.T) {
	router, _ := newTestRouter(t, keywordCompleter{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/expenses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), aggregator.NoticeEmptyLedger)

	for _, body := range []map[string]interface{}{
		{"date": "2024-01-01", "amount": 100, "description": "Rent"},
		{"date": "2024-01-02", "amount": 50, "description": "Movie"},
	} {
		require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/v1/expenses", body).Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/expenses?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list ExpensesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Expenses, 1)
	assert.Equal(t, "Movie", list.Expenses[0].Description)
	assert.Equal(t, "$150.00", list.Total)

	w = doJSON(t, router, http.MethodGet, "/api/v1/summary?income=300", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view report.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "$150.00", view.Total)
	require.NotNil(t, view.Budget)
	assert.Equal(t, "33.33", view.Budget.Rows[0].Percentage)
	assert.Equal(t, "16.67", view.Budget.Rows[1].Percentage)
	assert.False(t, view.Budget.Rows[2].Compliant)

	w = doJSON(t, router, http.MethodGet, "/api/v1/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), aggregator.NoticeIncomeMissing)

	w = doJSON(t, router, http.MethodGet, "/api/v1/summary?income=300&format=text", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "Total Expenses: $150.00")
	assert.Contains(t, w.Body.String(), "50/30/20 Rule Summary")

	w = doJSON(t, router, http.MethodGet, "/api/v1/summary?format=yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "profile: budget")
	assert.Contains(t, w.Body.String(), "150.00")

	assert.Equal(t, http.StatusBadRequest, doJSON(t, router, http.MethodGet, "/api/v1/summary?format=xml", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, router, http.MethodGet, "/api/v1/summary?income=-5", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, router, http.MethodGet, "/api/v1/expenses?limit=x", nil).Code)
}
