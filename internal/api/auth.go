package api

import (
	"errors"
	"net/http"                     // HTTP status codes
	"strings"                      // String manipulation
	"time"                         // Token lifetime
	"wallet_admin/internal/domain" // Importing domain models
	"wallet_admin/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Audit logging
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// LoginRequest is the admin login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries the admin session token
type AuthResponse struct {
	Token     string `json:"token"`      // JWT token
	ExpiresIn int64  `json:"expires_in"` // Seconds until the token expires
}

// LoginHandler authenticates an admin and returns a session token
func LoginHandler(users UserStore, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.FindUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			respondError(c, err)
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret, ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		logrus.WithFields(logrus.Fields{"admin_id": user.ID}).Info("Admin logged in")
		c.JSON(http.StatusOK, AuthResponse{Token: token, ExpiresIn: int64(ttl.Seconds())})
	}
}
