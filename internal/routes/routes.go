package routes

import (
	"net/http"

	"github.com/apotekcloud/apotek-golang/internal/handlers"
	"github.com/apotekcloud/apotek-golang/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware tells the browser the configured frontend origin may
// talk to us with credentials (the session cookie rides on every call).
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Strictly allow ONLY the configured frontend
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)

		// 2. Allow cookies / credentials
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		// 3. Allow the headers we actually use
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		// 4. Allow the HTTP methods we use in our API
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// 5. Handle the "Preflight" OPTIONS request
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	// --- APPLY THE CORS GUARD ---
	// This must be the very first thing the router uses
	router.Use(CORSMiddleware(h.Cfg.CORSOrigin))

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/auth/session", h.Login)
		v1.DELETE("/auth/session", h.Logout)

		// --- Cron Route (Bearer secret, not a user session) ---
		cron := v1.Group("/cron")
		cron.Use(middleware.CronAuth(h.Cfg.CronSecret))
		{
			cron.GET("/alerts", h.RunAlerts)
		}

		// --- Admin Routes (Login Required, admin role only) ---
		admin := v1.Group("/")
		admin.Use(middleware.AuthMiddleware([]byte(h.Cfg.SessionSecret)))
		admin.Use(middleware.RequireRole("admin"))
		{
			// --- Medicine Routes ---
			admin.GET("/medicines", h.GetMedicines)
			admin.GET("/medicines/search", h.SearchMedicines)
			admin.POST("/medicines", h.CreateMedicine)
			admin.PUT("/medicines/:id", h.UpdateMedicine)
			admin.DELETE("/medicines/:id", h.DeleteMedicine)

			// --- Sale Routes ---
			admin.POST("/sales", h.CreateSale)
			admin.GET("/sales", h.GetSales)

			// --- Supplier Routes ---
			admin.GET("/suppliers", h.GetSuppliers)
			admin.POST("/suppliers", h.CreateSupplier)
			admin.PUT("/suppliers/:id", h.UpdateSupplier)
			admin.DELETE("/suppliers/:id", h.DeleteSupplier)

			// --- User Routes ---
			admin.GET("/users", h.GetUsers)
			admin.POST("/users", h.CreateUser)
			admin.PATCH("/users/:id/role", h.UpdateUserRole)
			admin.DELETE("/users/:id", h.DeleteUser)

			// --- Report Routes ---
			admin.GET("/reports/sales", h.GetSalesReport)
			admin.GET("/reports/low-stock", h.GetLowStockReport)
			admin.GET("/reports/expiring", h.GetExpiringSoonReport)
			admin.GET("/reports/pdf", h.ExportReportPDF)

			// --- Dashboard ---
			admin.GET("/dashboard/stats", h.GetDashboardStats)

			// --- Alert Routes ---
			admin.POST("/alerts/run", h.RunAlerts)
			admin.GET("/alerts", h.GetAlerts)

			// --- AI Chat Route ---
			admin.POST("/ai/chat", h.ChatAI)
		}
	}

	return router
}
