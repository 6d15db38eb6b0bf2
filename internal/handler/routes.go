package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, transactionHandler *TransactionHandler, recurringHandler *RecurringHandler, dashboardHandler *DashboardHandler, planningHandler *PlanningHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.PATCH("/:id/toggle-status", transactionHandler.ToggleStatus)

	// Recurring expense routes
	recurring := api.Group("/recurring-expenses")
	recurring.POST("", recurringHandler.CreateRecurringExpense)
	recurring.GET("", recurringHandler.GetRecurringExpenses)
	recurring.GET("/:id", recurringHandler.GetRecurringExpense)
	recurring.PUT("/:id", recurringHandler.UpdateRecurringExpense)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurringExpense)
	recurring.GET("/:id/payments", recurringHandler.GetPaymentHistory)
	recurring.GET("/:id/payments/:period", recurringHandler.GetPaymentStatus)
	recurring.PUT("/:id/payments/:period", recurringHandler.SetPayment)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.GET("", planningHandler.GetBudgets)
	budgets.PUT("/:category", planningHandler.UpsertBudget)
	budgets.DELETE("/:category", planningHandler.DeleteBudget)

	// Planning routes
	planning := api.Group("/planning")
	planning.GET("/monthly/:year/:month", planningHandler.GetMonthlyPlan)
	planning.GET("/annual/:year", planningHandler.GetAnnualPlan)
	planning.GET("/notes/monthly/:year/:month", planningHandler.GetMonthlyNote)
	planning.PUT("/notes/monthly/:year/:month", planningHandler.UpsertMonthlyNote)
	planning.GET("/notes/annual/:year", planningHandler.GetAnnualNote)
	planning.PUT("/notes/annual/:year", planningHandler.UpsertAnnualNote)

	// WebSocket endpoint
	e.GET("/ws", wsHandler.HandleWS)
}
