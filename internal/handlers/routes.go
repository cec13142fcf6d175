package handlers

import (
	"github.com/gin-gonic/gin"

	"dompet/internal/middleware"
	"dompet/internal/services"
)

// Services bundles the business services the HTTP layer depends on.
type Services struct {
	Users        services.UserServicer
	Pockets      services.PocketServicer
	Transactions services.TransactionServicer
	Plans        services.PlanServicer
	Summary      services.SummaryServicer
	Snapshot     services.SnapshotServicer
	Audit        services.AuditServicer
}

// RegisterRoutes mounts every API route on the given /api/v1 group.
func RegisterRoutes(v1 *gin.RouterGroup, svc Services) {
	authHandler := NewAuthHandler(svc.Users, svc.Audit)
	adminHandler := NewAdminHandler(svc.Users, svc.Audit)
	pocketHandler := NewPocketHandler(svc.Pockets, svc.Audit)
	transactionHandler := NewTransactionHandler(svc.Transactions, svc.Audit)
	planHandler := NewPlanHandler(svc.Plans, svc.Audit)
	summaryHandler := NewSummaryHandler(svc.Summary, svc.Snapshot)

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(svc.Users))

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/summary", summaryHandler.GetSummary)
	protected.GET("/data", summaryHandler.GetData)

	pockets := protected.Group("/pockets")
	pockets.POST("", pocketHandler.CreatePocket)
	pockets.GET("", pocketHandler.GetUserPockets)
	pockets.GET("/:id", pocketHandler.GetPocketByID)
	pockets.PUT("/:id", pocketHandler.UpdatePocket)
	pockets.DELETE("/:id", pocketHandler.DeletePocket)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	plans := protected.Group("/plans")
	plans.POST("", planHandler.CreatePlan)
	plans.GET("", planHandler.GetUserPlans)
	plans.GET("/:id", planHandler.GetPlanByID)
	plans.PUT("/:id", planHandler.UpdatePlan)
	plans.DELETE("/:id", planHandler.DeletePlan)
	plans.POST("/:id/pay", planHandler.PayPlan)

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
}
