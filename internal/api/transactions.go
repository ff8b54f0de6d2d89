package api

import (
	"fmt"
	"net/http" // HTTP status codes

	"wallet_admin/internal/domain"     // Importing domain models
	"wallet_admin/internal/middleware" // Authenticated admin id

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Audit logging
)

// CompleteRequest accepts both camelCase and snake_case field names
type CompleteRequest struct {
	TransactionID      string `json:"transactionId"`
	TransactionIDSnake string `json:"transaction_id"`
	UserID             string `json:"userId"`
	UserIDSnake        string `json:"user_id"`
	AdminUserID        string `json:"adminUserId"`
	AdminUserIDSnake   string `json:"admin_user_id"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// CompleteTransactionHandler credits a pending transaction to its owner's wallet
func CompleteTransactionHandler(txns TransactionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CompleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("invalid request: %w", domain.ErrValidation))
			return
		}
		adminID := middleware.AdminID(c)
		// The acting admin is the token holder; a body value may only repeat it
		if claimed := firstNonEmpty(req.AdminUserID, req.AdminUserIDSnake); claimed != "" && claimed != adminID {
			respondError(c, fmt.Errorf("adminUserId does not match the authenticated admin: %w", domain.ErrForbidden))
			return
		}
		completion := domain.CompletionRequest{
			TransactionID: firstNonEmpty(req.TransactionID, req.TransactionIDSnake),
			UserID:        firstNonEmpty(req.UserID, req.UserIDSnake),
			AdminUserID:   adminID,
		}
		result, err := txns.CompleteTransaction(c.Request.Context(), completion)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"admin_id":         adminID,
			"transaction_id":   result.TransactionID,
			"user_id":          completion.UserID,
			"amount":           result.Amount,
			"previous_balance": result.PreviousBalance,
			"new_balance":      result.NewBalance,
		}).Info("Transaction completed")
		c.JSON(http.StatusOK, result)
	}
}

// GetTransactionHandler returns one transaction by id
func GetTransactionHandler(txns TransactionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		txn, err := txns.GetTransaction(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, txn)
	}
}
