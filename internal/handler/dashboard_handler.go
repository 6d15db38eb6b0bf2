package handler

import (
	"net/http"

	"github.com/bolsoapp/bolso-backend/internal/domain"
	"github.com/bolsoapp/bolso-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// RecurringTotalsResponse represents recurring commitment totals in API responses
type RecurringTotalsResponse struct {
	MonthlyCommitment string `json:"monthlyCommitment"`
	Fixed             string `json:"fixed"`
	Subscriptions     string `json:"subscriptions"`
	Installments      string `json:"installments"`
}

// DashboardResponse represents the dashboard summary in API responses
type DashboardResponse struct {
	Balance            string                  `json:"balance"`
	TotalIncome        string                  `json:"totalIncome"`
	TotalExpense       string                  `json:"totalExpense"`
	RecurringTotals    RecurringTotalsResponse `json:"recurringTotals"`
	RecentTransactions []TransactionResponse   `json:"recentTransactions"`
}

func toDashboardResponse(summary *domain.DashboardSummary) DashboardResponse {
	resp := DashboardResponse{
		Balance:      summary.Balance.StringFixed(2),
		TotalIncome:  summary.TotalIncome.StringFixed(2),
		TotalExpense: summary.TotalExpense.StringFixed(2),
		RecurringTotals: RecurringTotalsResponse{
			MonthlyCommitment: summary.RecurringTotals.MonthlyCommitment.StringFixed(2),
			Fixed:             summary.RecurringTotals.Fixed.StringFixed(2),
			Subscriptions:     summary.RecurringTotals.Subscriptions.StringFixed(2),
			Installments:      summary.RecurringTotals.Installments.StringFixed(2),
		},
		RecentTransactions: make([]TransactionResponse, len(summary.RecentTransactions)),
	}
	for i, t := range summary.RecentTransactions {
		resp.RecentTransactions[i] = toTransactionResponse(t)
	}
	return resp
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	summary, err := h.dashboardService.Summary()
	if err != nil {
		log.Error().Err(err).Msg("Failed to build dashboard summary")
		return NewInternalError(c, "Failed to build dashboard summary")
	}

	return c.JSON(http.StatusOK, toDashboardResponse(summary))
}
