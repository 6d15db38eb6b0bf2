package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/bolsoapp/bolso-backend/internal/service"
	"github.com/bolsoapp/bolso-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PlanningHandler handles budget and planning HTTP requests
type PlanningHandler struct {
	transactionService *service.TransactionService
	budgetService      *service.BudgetService
	noteService        *service.NoteService
	publisher          websocket.EventPublisher
}

// NewPlanningHandler creates a new PlanningHandler
func NewPlanningHandler(
	transactionService *service.TransactionService,
	budgetService *service.BudgetService,
	noteService *service.NoteService,
	publisher websocket.EventPublisher,
) *PlanningHandler {
	return &PlanningHandler{
		transactionService: transactionService,
		budgetService:      budgetService,
		noteService:        noteService,
		publisher:          publisher,
	}
}

// BudgetRequest represents the upsert budget request body
type BudgetRequest struct {
	Amount string `json:"amount"`
}

// BudgetResponse represents a category budget in API responses
type BudgetResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// BudgetLineResponse represents one row of the monthly planning table
type BudgetLineResponse struct {
	Category  string `json:"category"`
	Budgeted  string `json:"budgeted"`
	Spent     string `json:"spent"`
	Remaining string `json:"remaining"`
	Status    string `json:"status"`
}

// MonthlyPlanResponse represents the monthly planning view
type MonthlyPlanResponse struct {
	Year    int                  `json:"year"`
	Month   int                  `json:"month"`
	Budgets []BudgetLineResponse `json:"budgets"`
	Note    string               `json:"note"`
}

// MonthEntryResponse represents one month of the annual breakdown
type MonthEntryResponse struct {
	Month    int    `json:"month"`
	Label    string `json:"label"`
	Budgeted string `json:"budgeted"`
	Spent    string `json:"spent"`
}

// AnnualPlanResponse represents the annual planning view
type AnnualPlanResponse struct {
	Year      int                  `json:"year"`
	Budgeted  string               `json:"budgeted"`
	Spent     string               `json:"spent"`
	Remaining string               `json:"remaining"`
	Months    []MonthEntryResponse `json:"months"`
	Note      string               `json:"note"`
}

// NoteRequest represents the upsert note request body
type NoteRequest struct {
	Note string `json:"note"`
}

// parseYearParam and parseMonthParam write the 400 themselves on a bad path
// param; callers must stop when the second return is false.
func parseYearParam(c echo.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		NewValidationError(c, "Invalid year", nil)
		return 0, false
	}
	return year, true
}

func parseMonthParam(c echo.Context) (int, bool) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		NewValidationError(c, "Invalid month", nil)
		return 0, false
	}
	return month, true
}

// GetBudgets handles GET /api/v1/budgets
func (h *PlanningHandler) GetBudgets(c echo.Context) error {
	budgets, err := h.budgetService.ListBudgets()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list budgets")
		return NewInternalError(c, "Failed to list budgets")
	}

	resp := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = BudgetResponse{Category: b.Category, Amount: b.Amount.StringFixed(2)}
	}
	return c.JSON(http.StatusOK, resp)
}

// UpsertBudget handles PUT /api/v1/budgets/:category
func (h *PlanningHandler) UpsertBudget(c echo.Context) error {
	category := c.Param("category")

	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.UpsertBudget(category, amount)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: "Category is required"},
			})
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must not be negative"},
			})
		}
		log.Error().Err(err).Str("category", category).Msg("Failed to upsert budget")
		return NewInternalError(c, "Failed to upsert budget")
	}

	resp := BudgetResponse{Category: budget.Category, Amount: budget.Amount.StringFixed(2)}
	h.publisher.Publish(websocket.BudgetUpdated(resp))

	return c.JSON(http.StatusOK, resp)
}

// DeleteBudget handles DELETE /api/v1/budgets/:category
func (h *PlanningHandler) DeleteBudget(c echo.Context) error {
	category := c.Param("category")

	if err := h.budgetService.DeleteBudget(category); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("category", category).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	h.publisher.Publish(websocket.BudgetDeleted(map[string]string{"category": category}))

	return c.NoContent(http.StatusNoContent)
}

// GetMonthlyPlan handles GET /api/v1/planning/monthly/:year/:month
func (h *PlanningHandler) GetMonthlyPlan(c echo.Context) error {
	year, ok := parseYearParam(c)
	if !ok {
		return nil
	}
	month, ok := parseMonthParam(c)
	if !ok {
		return nil
	}

	transactions, err := h.transactionService.ListTransactions(domain.TransactionFilter{})
	if err != nil {
		log.Error().Err(err).Msg("Failed to load transactions")
		return NewInternalError(c, "Failed to build monthly plan")
	}
	budgets, err := h.budgetService.ListBudgets()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load budgets")
		return NewInternalError(c, "Failed to build monthly plan")
	}
	note, err := h.noteService.GetMonthlyNote(year, month)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load monthly note")
		return NewInternalError(c, "Failed to build monthly plan")
	}

	lines := h.budgetService.CategoryReport(transactions, budgets, year, time.Month(month))

	resp := MonthlyPlanResponse{
		Year:    year,
		Month:   month,
		Budgets: make([]BudgetLineResponse, len(lines)),
		Note:    note.Note,
	}
	for i, line := range lines {
		resp.Budgets[i] = BudgetLineResponse{
			Category:  line.Category,
			Budgeted:  line.Budgeted.StringFixed(2),
			Spent:     line.Spent.StringFixed(2),
			Remaining: line.Remaining.StringFixed(2),
			Status:    string(line.Status),
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAnnualPlan handles GET /api/v1/planning/annual/:year
func (h *PlanningHandler) GetAnnualPlan(c echo.Context) error {
	year, ok := parseYearParam(c)
	if !ok {
		return nil
	}

	transactions, err := h.transactionService.ListTransactions(domain.TransactionFilter{})
	if err != nil {
		log.Error().Err(err).Msg("Failed to load transactions")
		return NewInternalError(c, "Failed to build annual plan")
	}
	budgets, err := h.budgetService.ListBudgets()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load budgets")
		return NewInternalError(c, "Failed to build annual plan")
	}
	note, err := h.noteService.GetAnnualNote(year)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load annual note")
		return NewInternalError(c, "Failed to build annual plan")
	}

	report := h.budgetService.AnnualReport(transactions, budgets, year)

	resp := AnnualPlanResponse{
		Year:      report.Year,
		Budgeted:  report.Budgeted.StringFixed(2),
		Spent:     report.Spent.StringFixed(2),
		Remaining: report.Remaining.StringFixed(2),
		Months:    make([]MonthEntryResponse, len(report.Months)),
		Note:      note.Note,
	}
	for i, entry := range report.Months {
		resp.Months[i] = MonthEntryResponse{
			Month:    entry.Month,
			Label:    entry.Label,
			Budgeted: entry.Budgeted.StringFixed(2),
			Spent:    entry.Spent.StringFixed(2),
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// GetMonthlyNote handles GET /api/v1/planning/notes/monthly/:year/:month
func (h *PlanningHandler) GetMonthlyNote(c echo.Context) error {
	year, ok := parseYearParam(c)
	if !ok {
		return nil
	}
	month, ok := parseMonthParam(c)
	if !ok {
		return nil
	}

	note, err := h.noteService.GetMonthlyNote(year, month)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get monthly note")
		return NewInternalError(c, "Failed to get monthly note")
	}
	return c.JSON(http.StatusOK, note)
}

// GetAnnualNote handles GET /api/v1/planning/notes/annual/:year
func (h *PlanningHandler) GetAnnualNote(c echo.Context) error {
	year, ok := parseYearParam(c)
	if !ok {
		return nil
	}

	note, err := h.noteService.GetAnnualNote(year)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get annual note")
		return NewInternalError(c, "Failed to get annual note")
	}
	return c.JSON(http.StatusOK, note)
}

// UpsertMonthlyNote handles PUT /api/v1/planning/notes/monthly/:year/:month
func (h *PlanningHandler) UpsertMonthlyNote(c echo.Context) error {
	year, ok := parseYearParam(c)
	if !ok {
		return nil
	}
	month, ok := parseMonthParam(c)
	if !ok {
		return nil
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	note, err := h.noteService.UpsertMonthlyNote(year, month, req.Note)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "note", Message: "Note must be 2000 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Invalid month", nil)
		}
		log.Error().Err(err).Msg("Failed to upsert monthly note")
		return NewInternalError(c, "Failed to upsert monthly note")
	}

	h.publisher.Publish(websocket.NoteUpdated(note))

	return c.JSON(http.StatusOK, note)
}

// UpsertAnnualNote handles PUT /api/v1/planning/notes/annual/:year
func (h *PlanningHandler) UpsertAnnualNote(c echo.Context) error {
	year, ok := parseYearParam(c)
	if !ok {
		return nil
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	note, err := h.noteService.UpsertAnnualNote(year, req.Note)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "note", Message: "Note must be 2000 characters or less"},
			})
		}
		log.Error().Err(err).Msg("Failed to upsert annual note")
		return NewInternalError(c, "Failed to upsert annual note")
	}

	h.publisher.Publish(websocket.NoteUpdated(note))

	return c.JSON(http.StatusOK, note)
}
