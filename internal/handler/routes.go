package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/aliyevk1/bdgtweb/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter *middleware.RateLimiter,
	authHandler *AuthHandler,
	categoryHandler *CategoryHandler,
	incomeHandler *IncomeHandler,
	expenseHandler *ExpenseHandler,
	recurringHandler *RecurringHandler,
	transactionHandler *TransactionHandler,
	dashboardHandler *DashboardHandler,
	templateHandler *TemplateHandler,
) {
	// API version 1
	api := e.Group("/api/v1")

	// Credential routes (rate limited, unauthenticated)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, middleware.RateLimitMiddleware(loginLimiter))
	auth.POST("/login", authHandler.Login, middleware.RateLimitMiddleware(loginLimiter))
	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate())

	// Category routes (protected)
	categories := api.Group("/categories")
	categories.Use(authMiddleware.Authenticate())
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Income routes (protected)
	income := api.Group("/income")
	income.Use(authMiddleware.Authenticate())
	income.POST("", incomeHandler.CreateIncome)
	income.GET("", incomeHandler.GetIncome)
	income.DELETE("/:id", incomeHandler.DeleteIncome)

	// Expense routes (protected)
	expenses := api.Group("/expenses")
	expenses.Use(authMiddleware.Authenticate())
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Recurring template routes (protected)
	recurring := api.Group("/recurring")
	recurring.Use(authMiddleware.Authenticate())
	recurring.POST("", recurringHandler.CreateTemplate)
	recurring.GET("", recurringHandler.GetTemplates)
	recurring.DELETE("/:id", recurringHandler.DeleteTemplate)

	// Transaction feed (protected)
	transactions := api.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate())
	transactions.GET("", transactionHandler.GetTransactions)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard")
	dashboard.Use(authMiddleware.Authenticate())
	dashboard.GET("", dashboardHandler.GetSummary)

	// Template export/import (protected)
	templates := api.Group("/templates")
	templates.Use(authMiddleware.Authenticate())
	templates.GET("/export", templateHandler.Export)
	templates.POST("/import", templateHandler.Import)
}
