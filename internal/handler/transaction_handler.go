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

const dateLayout = "2006-01-02"

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	publisher          websocket.EventPublisher
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService, publisher websocket.EventPublisher) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		publisher:          publisher,
	}
}

// PaymentPlanRequest represents a payment plan in request bodies
type PaymentPlanRequest struct {
	Kind          string `json:"kind"`
	TotalPeriods  int    `json:"totalPeriods"`
	CurrentPeriod int    `json:"currentPeriod,omitempty"`
	DueDay        int    `json:"dueDay"`
	AutoDebit     bool   `json:"autoDebit"`
	ValueBasis    string `json:"valueBasis"`
}

// TransactionRequest represents the create/update transaction request body
type TransactionRequest struct {
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Amount      string              `json:"amount"`
	Date        string              `json:"date"`
	Type        string              `json:"type"`
	Status      string              `json:"status,omitempty"`
	Plan        *PaymentPlanRequest `json:"plan,omitempty"`
}

// PaymentPlanResponse represents a payment plan in API responses
type PaymentPlanResponse struct {
	Kind          string `json:"kind"`
	TotalPeriods  int    `json:"totalPeriods"`
	CurrentPeriod int    `json:"currentPeriod"`
	DueDay        int    `json:"dueDay"`
	AutoDebit     bool   `json:"autoDebit"`
	ValueBasis    string `json:"valueBasis"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          string               `json:"id"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Amount      string               `json:"amount"`
	Date        string               `json:"date"`
	Type        string               `json:"type"`
	Status      string               `json:"status"`
	Plan        *PaymentPlanResponse `json:"plan,omitempty"`
	CreatedAt   string               `json:"createdAt"`
	UpdatedAt   string               `json:"updatedAt"`
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID.String(),
		Description: t.Description,
		Category:    t.Category,
		Amount:      t.Amount.StringFixed(2),
		Date:        t.Date.Format(dateLayout),
		Type:        string(t.Type),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if t.Plan != nil {
		resp.Plan = &PaymentPlanResponse{
			Kind:          string(t.Plan.Kind),
			TotalPeriods:  t.Plan.TotalPeriods,
			CurrentPeriod: t.Plan.CurrentPeriod,
			DueDay:        t.Plan.DueDay,
			AutoDebit:     t.Plan.AutoDebit,
			ValueBasis:    string(t.Plan.ValueBasis),
		}
	}
	return resp
}

// parseTransactionRequest writes the 400 itself on a malformed field; the
// second return reports whether parsing succeeded, so callers must stop
// without writing anything further when it is false.
func parseTransactionRequest(c echo.Context, req *TransactionRequest) (service.TransactionInput, bool) {
	var input service.TransactionInput

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
		return input, false
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
		return input, false
	}

	input = service.TransactionInput{
		Description: req.Description,
		Category:    req.Category,
		Amount:      amount,
		Date:        date,
		Type:        domain.TransactionType(req.Type),
		Status:      domain.SettlementStatus(req.Status),
	}
	if req.Plan != nil {
		input.Plan = &domain.PaymentPlan{
			Kind:          domain.PlanKind(req.Plan.Kind),
			TotalPeriods:  req.Plan.TotalPeriods,
			CurrentPeriod: req.Plan.CurrentPeriod,
			DueDay:        req.Plan.DueDay,
			AutoDebit:     req.Plan.AutoDebit,
			ValueBasis:    domain.ValueBasis(req.Plan.ValueBasis),
		}
	}
	return input, true
}

func transactionValidationError(c echo.Context, err error) error {
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
	case errors.Is(err, domain.ErrInvalidTransactionType):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be one of: income, expense"},
		})
	case errors.Is(err, domain.ErrInvalidStatus):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "status", Message: "Status must be one of: paid, pending, scheduled"},
		})
	case errors.Is(err, domain.ErrMalformedRecord):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date is required"},
		})
	case errors.Is(err, domain.ErrInvalidPlanKind),
		errors.Is(err, domain.ErrInvalidValueBasis),
		errors.Is(err, domain.ErrInvalidPeriodCount),
		errors.Is(err, domain.ErrInvalidCurrentPeriod),
		errors.Is(err, domain.ErrInvalidDueDay):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "plan", Message: err.Error()},
		})
	}
	return nil
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, ok := parseTransactionRequest(c, &req)
	if !ok {
		return nil
	}

	transaction, err := h.transactionService.CreateTransaction(input)
	if err != nil {
		if resp := transactionValidationError(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	resp := toTransactionResponse(transaction)
	h.publisher.Publish(websocket.TransactionCreated(resp))

	log.Info().Str("transaction_id", resp.ID).Str("description", transaction.Description).Msg("Transaction created")
	return c.JSON(http.StatusCreated, resp)
}

// GetTransactions handles GET /api/v1/transactions with optional filter params
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	filter, ok := parseTransactionFilter(c)
	if !ok {
		return nil
	}

	transactions, err := h.transactionService.ListTransactions(filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFilterRange) {
			return NewValidationError(c, "Filter range is inverted", nil)
		}
		log.Error().Err(err).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	resp := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		resp[i] = toTransactionResponse(t)
	}
	return c.JSON(http.StatusOK, resp)
}

// parseTransactionFilter writes the 400 itself on a malformed query param;
// callers must stop when the second return is false.
func parseTransactionFilter(c echo.Context) (domain.TransactionFilter, bool) {
	filter := domain.TransactionFilter{
		Description: c.QueryParam("description"),
		Category:    c.QueryParam("category"),
	}

	if raw := c.QueryParam("status"); raw != "" {
		status := domain.SettlementStatus(raw)
		if !status.Valid() {
			NewValidationError(c, "Invalid status filter", nil)
			return filter, false
		}
		filter.Status = &status
	}
	if raw := c.QueryParam("type"); raw != "" {
		txType := domain.TransactionType(raw)
		if !txType.Valid() {
			NewValidationError(c, "Invalid type filter", nil)
			return filter, false
		}
		filter.Type = &txType
	}
	if raw := c.QueryParam("minAmount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			NewValidationError(c, "Invalid minAmount", nil)
			return filter, false
		}
		filter.MinAmount = &amount
	}
	if raw := c.QueryParam("maxAmount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			NewValidationError(c, "Invalid maxAmount", nil)
			return filter, false
		}
		filter.MaxAmount = &amount
	}
	if raw := c.QueryParam("startDate"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			NewValidationError(c, "Invalid startDate", nil)
			return filter, false
		}
		filter.StartDate = &date
	}
	if raw := c.QueryParam("endDate"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			NewValidationError(c, "Invalid endDate", nil)
			return filter, false
		}
		filter.EndDate = &date
	}

	return filter, true
}

// GetTransaction handles GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.GetTransaction(id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("transaction_id", id.String()).Msg("Failed to get transaction")
		return NewInternalError(c, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, ok := parseTransactionRequest(c, &req)
	if !ok {
		return nil
	}

	transaction, err := h.transactionService.UpdateTransaction(id, input)
	if err != nil {
		if resp := transactionValidationError(c, err); resp != nil {
			return resp
		}
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("transaction_id", id.String()).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}

	resp := toTransactionResponse(transaction)
	h.publisher.Publish(websocket.TransactionUpdated(resp))

	return c.JSON(http.StatusOK, resp)
}

// ToggleStatus handles PATCH /api/v1/transactions/:id/toggle-status
func (h *TransactionHandler) ToggleStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.ToggleStatus(id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("transaction_id", id.String()).Msg("Failed to toggle transaction status")
		return NewInternalError(c, "Failed to toggle transaction status")
	}

	resp := toTransactionResponse(transaction)
	h.publisher.Publish(websocket.TransactionToggled(resp))

	return c.JSON(http.StatusOK, resp)
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("transaction_id", id.String()).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	h.publisher.Publish(websocket.TransactionDeleted(map[string]string{"id": id.String()}))

	return c.NoContent(http.StatusNoContent)
}
