package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/bolsoapp/bolso-backend/internal/service"
	"github.com/bolsoapp/bolso-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RecurringHandler handles recurring expense HTTP requests
type RecurringHandler struct {
	recurringService *service.RecurringService
	paymentService   *service.PaymentStatusService
	publisher        websocket.EventPublisher
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(recurringService *service.RecurringService, paymentService *service.PaymentStatusService, publisher websocket.EventPublisher) *RecurringHandler {
	return &RecurringHandler{
		recurringService: recurringService,
		paymentService:   paymentService,
		publisher:        publisher,
	}
}

// RecurringExpenseRequest represents the create/update request body
type RecurringExpenseRequest struct {
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Amount       string  `json:"amount"`
	Kind         string  `json:"kind"`
	Frequency    string  `json:"frequency"`
	DueDay       int     `json:"dueDay"`
	Installments *int    `json:"installments,omitempty"`
	StartDate    string  `json:"startDate"`
	EndDate      *string `json:"endDate,omitempty"`
	Status       string  `json:"status,omitempty"`
	AutoDebit    bool    `json:"autoDebit"`
}

// RecurringExpenseResponse represents a recurring expense in API responses
type RecurringExpenseResponse struct {
	ID                 string  `json:"id"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	Amount             string  `json:"amount"`
	Kind               string  `json:"kind"`
	Frequency          string  `json:"frequency"`
	DueDay             int     `json:"dueDay"`
	Installments       *int    `json:"installments,omitempty"`
	CurrentInstallment *int    `json:"currentInstallment,omitempty"`
	StartDate          string  `json:"startDate"`
	EndDate            *string `json:"endDate,omitempty"`
	Status             string  `json:"status"`
	AutoDebit          bool    `json:"autoDebit"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// PaymentRequest represents the body of PUT /recurring-expenses/:id/payments/:period
type PaymentRequest struct {
	Paid     bool    `json:"paid"`
	PaidDate *string `json:"paidDate,omitempty"`
}

// PaymentResponse represents a payment history entry in API responses
type PaymentResponse struct {
	RecurringExpenseID string  `json:"recurringExpenseId"`
	Period             string  `json:"period"`
	Paid               bool    `json:"paid"`
	PaidDate           *string `json:"paidDate,omitempty"`
}

func toRecurringExpenseResponse(e *domain.RecurringExpense) RecurringExpenseResponse {
	resp := RecurringExpenseResponse{
		ID:                 e.ID.String(),
		Description:        e.Description,
		Category:           e.Category,
		Amount:             e.Amount.StringFixed(2),
		Kind:               string(e.Kind),
		Frequency:          string(e.Frequency),
		DueDay:             e.DueDay,
		Installments:       e.Installments,
		CurrentInstallment: e.CurrentInstallment,
		StartDate:          e.StartDate.Format(dateLayout),
		Status:             string(e.Status),
		AutoDebit:          e.AutoDebit,
		CreatedAt:          e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          e.UpdatedAt.Format(time.RFC3339),
	}
	if e.EndDate != nil {
		end := e.EndDate.Format(dateLayout)
		resp.EndDate = &end
	}
	return resp
}

func toPaymentResponse(entry *domain.PaymentHistoryEntry) PaymentResponse {
	resp := PaymentResponse{
		RecurringExpenseID: entry.RecurringExpenseID.String(),
		Period:             string(entry.Period),
		Paid:               entry.Paid,
	}
	if entry.PaidDate != nil {
		date := entry.PaidDate.Format(dateLayout)
		resp.PaidDate = &date
	}
	return resp
}

// parseRecurringExpenseRequest writes the 400 itself on a malformed field;
// callers must stop when the second return is false.
func parseRecurringExpenseRequest(c echo.Context, req *RecurringExpenseRequest) (service.RecurringExpenseInput, bool) {
	var input service.RecurringExpenseInput

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
		return input, false
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		NewValidationError(c, "Invalid start date", []ValidationError{
			{Field: "startDate", Message: "Must be in YYYY-MM-DD format"},
		})
		return input, false
	}

	input = service.RecurringExpenseInput{
		Description:  req.Description,
		Category:     req.Category,
		Amount:       amount,
		Kind:         domain.ExpenseKind(req.Kind),
		Frequency:    domain.Frequency(req.Frequency),
		DueDay:       req.DueDay,
		Installments: req.Installments,
		StartDate:    startDate,
		Status:       domain.LifecycleStatus(req.Status),
		AutoDebit:    req.AutoDebit,
	}
	if req.EndDate != nil && *req.EndDate != "" {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			NewValidationError(c, "Invalid end date", []ValidationError{
				{Field: "endDate", Message: "Must be in YYYY-MM-DD format"},
			})
			return input, false
		}
		input.EndDate = &endDate
	}
	return input, true
}

func recurringValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrDescriptionRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrCategoryRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Category is required"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, domain.ErrInvalidExpenseKind):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "kind", Message: "Kind must be one of: fixed, installment_plan, subscription"},
		})
	case errors.Is(err, domain.ErrInvalidFrequency):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "frequency", Message: "Frequency must be one of: monthly, semiannual, annual"},
		})
	case errors.Is(err, domain.ErrInvalidDueDay):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "dueDay", Message: "Due day must be between 1 and 31"},
		})
	case errors.Is(err, domain.ErrInvalidPeriodCount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "installments", Message: "Installment plans require at least 2 installments"},
		})
	case errors.Is(err, domain.ErrInvalidLifecycleStatus):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "status", Message: "Status must be one of: active, paused, finished"},
		})
	case errors.Is(err, domain.ErrInvalidDateRange):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "endDate", Message: "End date must be after start date"},
		})
	case errors.Is(err, domain.ErrMalformedRecord):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "startDate", Message: "Start date is required"},
		})
	}
	return nil
}

// CreateRecurringExpense handles POST /api/v1/recurring-expenses
func (h *RecurringHandler) CreateRecurringExpense(c echo.Context) error {
	var req RecurringExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, ok := parseRecurringExpenseRequest(c, &req)
	if !ok {
		return nil
	}

	expense, err := h.recurringService.CreateRecurringExpense(input)
	if err != nil {
		if resp := recurringValidationError(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Msg("Failed to create recurring expense")
		return NewInternalError(c, "Failed to create recurring expense")
	}

	resp := toRecurringExpenseResponse(expense)
	h.publisher.Publish(websocket.RecurringCreated(resp))

	log.Info().Str("recurring_id", resp.ID).Str("description", expense.Description).Msg("Recurring expense created")
	return c.JSON(http.StatusCreated, resp)
}

// GetRecurringExpenses handles GET /api/v1/recurring-expenses
func (h *RecurringHandler) GetRecurringExpenses(c echo.Context) error {
	var kind *domain.ExpenseKind
	if raw := c.QueryParam("kind"); raw != "" {
		k := domain.ExpenseKind(raw)
		if !k.Valid() {
			return NewValidationError(c, "Invalid kind filter", nil)
		}
		kind = &k
	}

	expenses, err := h.recurringService.ListRecurringExpenses(kind)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list recurring expenses")
		return NewInternalError(c, "Failed to list recurring expenses")
	}

	resp := make([]RecurringExpenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toRecurringExpenseResponse(e)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetRecurringExpense handles GET /api/v1/recurring-expenses/:id
func (h *RecurringHandler) GetRecurringExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring expense ID", nil)
	}

	expense, err := h.recurringService.GetRecurringExpense(id)
	if err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring expense not found")
		}
		log.Error().Err(err).Str("recurring_id", id.String()).Msg("Failed to get recurring expense")
		return NewInternalError(c, "Failed to get recurring expense")
	}

	return c.JSON(http.StatusOK, toRecurringExpenseResponse(expense))
}

// UpdateRecurringExpense handles PUT /api/v1/recurring-expenses/:id
func (h *RecurringHandler) UpdateRecurringExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring expense ID", nil)
	}

	var req RecurringExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, ok := parseRecurringExpenseRequest(c, &req)
	if !ok {
		return nil
	}

	expense, err := h.recurringService.UpdateRecurringExpense(id, input)
	if err != nil {
		if resp := recurringValidationError(c, err); resp != nil {
			return resp
		}
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring expense not found")
		}
		log.Error().Err(err).Str("recurring_id", id.String()).Msg("Failed to update recurring expense")
		return NewInternalError(c, "Failed to update recurring expense")
	}

	resp := toRecurringExpenseResponse(expense)
	h.publisher.Publish(websocket.RecurringUpdated(resp))

	return c.JSON(http.StatusOK, resp)
}

// DeleteRecurringExpense handles DELETE /api/v1/recurring-expenses/:id
func (h *RecurringHandler) DeleteRecurringExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring expense ID", nil)
	}

	if err := h.recurringService.DeleteRecurringExpense(id); err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring expense not found")
		}
		log.Error().Err(err).Str("recurring_id", id.String()).Msg("Failed to delete recurring expense")
		return NewInternalError(c, "Failed to delete recurring expense")
	}

	h.publisher.Publish(websocket.RecurringDeleted(map[string]string{"id": id.String()}))

	return c.NoContent(http.StatusNoContent)
}

// GetPaymentHistory handles GET /api/v1/recurring-expenses/:id/payments
func (h *RecurringHandler) GetPaymentHistory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring expense ID", nil)
	}

	history, err := h.paymentService.HistoryFor(id)
	if err != nil {
		log.Error().Err(err).Str("recurring_id", id.String()).Msg("Failed to get payment history")
		return NewInternalError(c, "Failed to get payment history")
	}

	resp := make([]PaymentResponse, len(history))
	for i, entry := range history {
		resp[i] = toPaymentResponse(entry)
	}
	return c.JSON(http.StatusOK, resp)
}

// SetPayment handles PUT /api/v1/recurring-expenses/:id/payments/:period
func (h *RecurringHandler) SetPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring expense ID", nil)
	}

	period := domain.PeriodKey(c.Param("period"))

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var paidDate *time.Time
	if req.PaidDate != nil && *req.PaidDate != "" {
		parsed, err := time.Parse(dateLayout, *req.PaidDate)
		if err != nil {
			return NewValidationError(c, "Invalid paid date", []ValidationError{
				{Field: "paidDate", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		paidDate = &parsed
	}

	entry, err := h.paymentService.SetPaid(id, period, req.Paid, paidDate)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriodKey) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "period", Message: "Period must be in YYYY-MM format"},
			})
		}
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring expense not found")
		}
		log.Error().Err(err).Str("recurring_id", id.String()).Str("period", string(period)).Msg("Failed to set payment")
		return NewInternalError(c, "Failed to set payment")
	}

	resp := toPaymentResponse(entry)
	h.publisher.Publish(websocket.PaymentSettled(resp))

	return c.JSON(http.StatusOK, resp)
}

// GetPaymentStatus handles GET /api/v1/recurring-expenses/:id/payments/:period
func (h *RecurringHandler) GetPaymentStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring expense ID", nil)
	}

	period := domain.PeriodKey(c.Param("period"))

	status, err := h.paymentService.StatusFor(id, period)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriodKey) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "period", Message: "Period must be in YYYY-MM format"},
			})
		}
		log.Error().Err(err).Str("recurring_id", id.String()).Str("period", string(period)).Msg("Failed to get payment status")
		return NewInternalError(c, "Failed to get payment status")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"recurringExpenseId": id.String(),
		"period":             string(period),
		"status":             string(status),
	})
}
