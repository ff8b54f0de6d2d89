package api

import (
	"context"
	"net/http"
	"time"

	"wallet_admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the admin API. Only GET and POST are routed; other
// methods on a known path get a JSON 405 and OPTIONS is answered by CORS.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.CORS())

	r.GET("/health", healthHandler(d.Ping))

	admin := r.Group("/admin")
	admin.POST("/login", middleware.RateLimit(d.LoginRate, d.LoginBurst), LoginHandler(d.Store, d.JWTSecret, d.JWTTTL))

	// Authenticated admin routes
	protected := admin.Group("")
	protected.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.AdminOnlyMiddleware(d.Store))
	{
		protected.GET("/settings", GetSettingsHandler(d.Store, d.Redis, d.CacheTTL))
		protected.POST("/settings", UpdateSettingsHandler(d.Store, d.Redis))
		protected.GET("/feature-flags", ListFlagsHandler(d.Store, d.Redis, d.CacheTTL))
		protected.POST("/feature-flags", SetFlagHandler(d.Store, d.Redis))

		protected.POST("/transactions/complete", CompleteTransactionHandler(d.Store))
		protected.GET("/transactions/:id", GetTransactionHandler(d.Store))

		protected.GET("/support-tickets", ListTicketsHandler(d.Store))
		protected.POST("/support-tickets/resolve", ResolveTicketHandler(d.Store, d.Notifier))

		protected.POST("/cards/freeze", FreezeCardHandler(d.Store, d.Cards))
		protected.POST("/cards/unfreeze", UnfreezeCardHandler(d.Store, d.Cards))

		protected.GET("/users/:id/net-worth", NetWorthHandler(d.Store))
	}
	return r
}

func healthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
