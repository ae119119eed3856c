package router

import (
	"net/http"

	"github.com/branchpos/backend/internal/infrastructure/auth"
	"github.com/branchpos/backend/internal/infrastructure/config"
	"github.com/branchpos/backend/internal/interfaces/http/handler"
	"github.com/branchpos/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router wires up
type Handlers struct {
	Auth        *handler.AuthHandler
	Branch      *handler.BranchHandler
	POS         *handler.POSHandler
	Transaction *handler.TransactionHandler
	Workforce   *handler.WorkforceHandler
	EndOfDay    *handler.EndOfDayHandler
}

// Setup builds the gin engine with middleware and all routes
func Setup(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		gin.Recovery(),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(
		middleware.JWTAuth(jwtService, "/api/v1/auth/login"),
		middleware.ActiveBranch(),
	)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", h.Auth.Me)
	}

	branchGroup := api.Group("/branches")
	{
		branchGroup.GET("", h.Branch.List)
		branchGroup.GET("/:key", h.Branch.Get)

		adminOnly := branchGroup.Group("", middleware.RequireRoles("admin"))
		adminOnly.POST("", h.Branch.Open)
		adminOnly.PUT("/:key/status", h.Branch.SetStatus)
	}

	posGroup := api.Group("/pos")
	{
		posGroup.GET("/products", h.POS.ListProducts)

		posGroup.GET("/cart", h.POS.GetCart)
		posGroup.DELETE("/cart", h.POS.ClearCart)
		posGroup.POST("/cart/items", h.POS.AddItem)
		posGroup.PATCH("/cart/items/:productId", h.POS.UpdateItem)
		posGroup.DELETE("/cart/items/:productId", h.POS.RemoveItem)
		posGroup.PUT("/cart/config", h.POS.UpdateOrderConfig)

		posGroup.POST("/transactions", h.Transaction.Commit)
		posGroup.GET("/transactions", h.Transaction.ListRecent)
		posGroup.GET("/transactions/:id", h.Transaction.Get)
		posGroup.POST("/transactions/:id/cancel", h.Transaction.Cancel)
		posGroup.GET("/summary", h.Transaction.DailySummary)
	}

	workforceGroup := api.Group("/workforce")
	{
		workforceGroup.GET("/roster", h.Workforce.Roster)
		workforceGroup.GET("/time-entries", h.Workforce.ListEntries)
		workforceGroup.POST("/employees/:employeeId/clock-in", h.Workforce.ClockIn)
		workforceGroup.POST("/employees/:employeeId/clock-out", h.Workforce.ClockOut)
		workforceGroup.POST("/employees/:employeeId/break/start", h.Workforce.StartBreak)
		workforceGroup.POST("/employees/:employeeId/break/end", h.Workforce.EndBreak)

		workforceGroup.POST("/payroll",
			middleware.RequireRoles("admin", "manager"), h.Workforce.GeneratePayroll)
	}

	endOfDayGroup := api.Group("/endofday")
	{
		endOfDayGroup.GET("/status", h.EndOfDay.Status)
		endOfDayGroup.PUT("/opening-float", h.EndOfDay.SetOpeningFloat)
		endOfDayGroup.POST("/petty-cash", h.EndOfDay.RecordPettyCash)
		endOfDayGroup.POST("/stock-check", h.EndOfDay.BeginStockCheck)
		endOfDayGroup.PUT("/stock-check/items/:itemId", h.EndOfDay.RecordCount)
		endOfDayGroup.POST("/stock-check/complete", h.EndOfDay.CompleteStockCheck)
		endOfDayGroup.POST("/cash-count", h.EndOfDay.BeginCashCount)
		endOfDayGroup.PUT("/cash-count", h.EndOfDay.RecordCashCount)
		endOfDayGroup.POST("/cash-count/finalize", h.EndOfDay.FinalizeCashCount)
		endOfDayGroup.POST("/report", h.EndOfDay.GenerateReport)
		endOfDayGroup.GET("/reports", h.EndOfDay.ListReports)
	}

	return engine
}
