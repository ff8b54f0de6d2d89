package middleware

import (
	"context"
	"errors"
	"net/http"                     // HTTP status codes
	"wallet_admin/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/sirupsen/logrus"
)

// UserLookup loads the account behind a session token
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// AdminOnlyMiddleware checks the user's role from the database on each request,
// so a revoked admin loses access before their token expires
func AdminOnlyMiddleware(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := AdminID(c) // Get userID from context
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				// Store failure: do not leak it as an authorization decision
				logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("Admin lookup failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// Check if user role is admin
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
