package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fjacquet/expense-ledger/internal/aggregator"
	"fjacquet/expense-ledger/internal/apperror"
	"fjacquet/expense-ledger/internal/dateutils"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/report"
	"fjacquet/expense-ledger/internal/tracker"
	"fjacquet/expense-ledger/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WarningBlankDescription is returned when an expense has no description.
const WarningBlankDescription = "Please enter a description."

type handler struct {
	svc    *tracker.Service
	logger logging.Logger
}

// AddExpenseRequest is the body of POST /api/v1/expenses. Amount accepts a
// JSON number or string; an empty date means today.
type AddExpenseRequest struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// AddExpenseResponse reports the stored record.
type AddExpenseResponse struct {
	Expense  report.ExpenseRow `json:"expense"`
	Category string            `json:"category"`
	Fallback bool              `json:"fallback"`
	Warnings []string          `json:"warnings"`
	Message  string            `json:"message"`
}

// ClassifyRequest is the body of POST /api/v1/classify.
type ClassifyRequest struct {
	Description string `json:"description"`
}

// ClassifyResponse reports a classification without storing anything.
type ClassifyResponse struct {
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Fallback    bool     `json:"fallback"`
	Warnings    []string `json:"warnings"`
}

// ExpensesResponse lists the ledger most recent first.
type ExpensesResponse struct {
	Expenses []report.ExpenseRow `json:"expenses"`
	Count    int                 `json:"count"`
	Total    string              `json:"total"`
	Message  string              `json:"message,omitempty"`
}

// CategoriesResponse describes the active category set.
type CategoriesResponse struct {
	Profile    string                  `json:"profile"`
	Overflow   string                  `json:"overflow"`
	Categories []models.CategoryConfig `json:"categories"`
	Labels     []string                `json:"labels"`
}

type errorResponse struct {
	Error    string   `json:"error"`
	Warnings []string `json:"warnings,omitempty"`
}

func (h *handler) listCategories(c *gin.Context) {
	set := h.svc.CategorySet()
	c.JSON(http.StatusOK, CategoriesResponse{
		Profile:    set.Name,
		Overflow:   set.Overflow,
		Categories: set.Categories,
		Labels:     set.AllLabels(),
	})
}

func (h *handler) classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Error:    apperror.ErrBlankDescription.Error(),
			Warnings: []string{WarningBlankDescription},
		})
		return
	}

	result := h.svc.Classify(c.Request.Context(), req.Description)
	c.JSON(http.StatusOK, ClassifyResponse{
		Description: req.Description,
		Category:    result.Label,
		Fallback:    result.Fallback,
		Warnings:    warnings(result.Warning),
	})
}

func (h *handler) addExpense(c *gin.Context) {
	var req AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	input := models.NewExpense{Amount: req.Amount, Description: req.Description}
	if strings.TrimSpace(req.Date) == "" {
		input.Date = dateutils.Today()
	} else {
		date, err := dateutils.ParseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		input.Date = date
	}

	result, err := h.svc.AddExpense(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AddExpenseResponse{
		Expense:  report.NewExpenseRow(result.Expense),
		Category: result.Expense.Category,
		Fallback: result.Classification.Fallback,
		Warnings: nonNil(result.Warnings),
		Message:  result.Message,
	})
}

func (h *handler) listExpenses(c *gin.Context) {
	history, err := h.svc.History(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	total := aggregator.TotalSpend(history)
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		if limit < len(history) {
			history = history[:limit]
		}
	}

	resp := ExpensesResponse{
		Expenses: report.NewExpenseRows(history),
		Count:    len(history),
		Total:    models.FormatCurrency(total),
	}
	if len(history) == 0 {
		resp.Message = aggregator.NoticeEmptyLedger
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) summary(c *gin.Context) {
	income := decimal.Zero
	if raw := c.Query("income"); raw != "" {
		parsed, err := models.ParseAmount(raw)
		if err != nil || parsed.IsNegative() {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "income must be a non-negative amount"})
			return
		}
		income = parsed
	}

	format := c.DefaultQuery("format", report.FormatJSON)
	if err := validation.IsValidOutputFormat(format); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s, err := h.svc.Summary(c.Request.Context(), income)
	if err != nil {
		h.writeError(c, err)
		return
	}

	withHistory := c.Query("history") == "true"
	switch strings.ToLower(format) {
	case report.FormatYAML:
		c.YAML(http.StatusOK, report.NewView(s, withHistory))
	case report.FormatText:
		out, err := report.NewGenerator(h.logger, withHistory).Generate(s, report.FormatText)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", out)
	default:
		c.JSON(http.StatusOK, report.NewView(s, withHistory))
	}
}

func (h *handler) writeError(c *gin.Context, err error) {
	var validationErr *apperror.ValidationError
	switch {
	case errors.Is(err, apperror.ErrBlankDescription):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Error:    err.Error(),
			Warnings: []string{WarningBlankDescription},
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.logger.WithError(err).Error("Request processing failed",
			logging.Field{Key: logging.FieldRequestID, Value: c.GetString(contextKeyRequestID)},
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func warnings(w string) []string {
	if w == "" {
		return []string{}
	}
	return []string{w}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
