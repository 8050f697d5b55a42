package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/filter"
	"spendwise/internal/pagination"
	"spendwise/internal/services"
)

// ExpenseHandler handles expense-related requests
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents an expense create/replace payload. Amount and
// date are raw strings; the validation rules engine owns their parsing.
type ExpenseRequest struct {
	Amount               string   `json:"amount" binding:"required"`
	Category             string   `json:"category" binding:"required"`
	Date                 string   `json:"date" binding:"required"`
	Description          string   `json:"description"`
	PaymentMethod        string   `json:"payment_method" binding:"required,payment_method"`
	PaymentMethodDetails string   `json:"payment_method_details"`
	Tags                 []string `json:"tags" binding:"max=10"`
	Location             string   `json:"location"`
	IsRecurring          bool     `json:"is_recurring"`
	RecurringPattern     string   `json:"recurring_pattern" binding:"omitempty,recurring_pattern"`
}

// FilterQuery represents the transaction history filter query parameters.
type FilterQuery struct {
	Search        string `form:"search"`
	Category      string `form:"category"`
	PaymentMethod string `form:"payment_method"`
	DateRange     string `form:"date_range" binding:"omitempty,date_range"`
}

func (q FilterQuery) criteria() filter.Criteria {
	return filter.Criteria{
		Search:        q.Search,
		Category:      q.Category,
		PaymentMethod: q.PaymentMethod,
		DateRange:     filter.DateRange(q.DateRange),
	}
}

func (r ExpenseRequest) form() services.ExpenseForm {
	return services.ExpenseForm{
		Amount:               r.Amount,
		Category:             r.Category,
		Date:                 r.Date,
		Description:          r.Description,
		PaymentMethod:        r.PaymentMethod,
		PaymentMethodDetails: r.PaymentMethodDetails,
		Tags:                 r.Tags,
		Location:             r.Location,
		IsRecurring:          r.IsRecurring,
		RecurringPattern:     r.RecurringPattern,
	}
}

// CreateExpense records a new expense
// @Summary     Create expense
// @Description Validate and record a new expense for the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense data"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.AddExpense(userID, req.form())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// UpdateExpense replaces an existing expense
// @Summary     Update expense
// @Description Replace an existing expense in full
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Param       request body ExpenseRequest true "Replacement expense data"
// @Success     200 {object} models.Expense "Expense updated"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, c.Param("id"), req.form())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense removes an expense
// @Summary     Delete expense
// @Description Delete an expense owned by the authenticated user
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     204 "Expense deleted"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetExpense returns one expense
// @Summary     Get expense
// @Description Get a single expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Expense"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// ListExpenses returns a page of the user's expenses
// @Summary     List expenses
// @Description List the authenticated user's expenses, most recent first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Expenses"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenseService.ListExpenses(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetStats returns the aggregated expense statistics
// @Summary     Get expense statistics
// @Description Totals, breakdowns, top categories, and the six-month trend
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} stats.Stats "Statistics"
// @Router      /expenses/stats [get]
func (h *ExpenseHandler) GetStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.expenseService.GetStats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": result})
}

// FilterExpenses returns the filtered transaction history
// @Summary     Filter transaction history
// @Description Apply search, category, payment method, and date range filters
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Free-text search"
// @Param       category query string false "Category or 'all'"
// @Param       payment_method query string false "Payment method or 'all'"
// @Param       date_range query string false "One of all, 7days, 30days, 3months, 6months, 1year"
// @Success     200 {object} services.FilteredExpenses "Matching expenses with running total"
// @Failure     400 {object} ErrorResponse "Unknown date range"
// @Router      /expenses/history [get]
func (h *ExpenseHandler) FilterExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query FilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenseService.FilterExpenses(userID, query.criteria())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportExpenses streams the filtered transaction set as CSV
// @Summary     Export transaction history
// @Description Export the filtered transaction set as a CSV download
// @Tags        expenses
// @Produce     text/csv
// @Security    BearerAuth
// @Param       search query string false "Free-text search"
// @Param       category query string false "Category or 'all'"
// @Param       payment_method query string false "Payment method or 'all'"
// @Param       date_range query string false "One of all, 7days, 30days, 3months, 6months, 1year"
// @Success     200 {string} string "CSV content"
// @Router      /expenses/export [get]
func (h *ExpenseHandler) ExportExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query FilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filename := fmt.Sprintf("expenses_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.expenseService.ExportCSV(c.Writer, userID, query.criteria()); err != nil {
		respondWithError(c, err)
		return
	}
}
