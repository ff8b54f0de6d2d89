package api

import (
	"errors"
	"fmt"
	"net/http" // HTTP status codes

	"wallet_admin/internal/domain"
	"wallet_admin/internal/middleware" // Admin id from the token

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/sirupsen/logrus"
)

// CardRequest names the card to freeze or unfreeze
type CardRequest struct {
	CardID      string `json:"card_id"`
	CardIDCamel string `json:"cardId"` // Accepted from older clients
}

// FreezeCardHandler freezes a card at the issuer, then records it locally
func FreezeCardHandler(cards CardStore, provider CardProvider) gin.HandlerFunc {
	return cardStateHandler(cards, provider, domain.CardFrozen)
}

// UnfreezeCardHandler lifts a freeze at the issuer, then records it locally
func UnfreezeCardHandler(cards CardStore, provider CardProvider) gin.HandlerFunc {
	return cardStateHandler(cards, provider, domain.CardActive)
}

func cardStateHandler(cards CardStore, provider CardProvider, status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if provider == nil || !provider.Configured() {
			respondError(c, fmt.Errorf("card provider credentials are not configured: %w", domain.ErrConfiguration))
			return
		}
		var req CardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("invalid request: %w", domain.ErrValidation))
			return
		}
		ctx := c.Request.Context()
		card, err := cards.GetCard(ctx, firstNonEmpty(req.CardID, req.CardIDCamel)) // Local id or provider ref
		if err != nil {
			respondError(c, err)
			return
		}

		call := provider.Freeze
		if status == domain.CardActive {
			call = provider.Unfreeze
		}
		if err := call(ctx, card.ProviderID()); err != nil {
			if errors.Is(err, domain.ErrBackend) {
				// Provider failures are reported as-is; they carry no internals of ours
				logrus.WithFields(logrus.Fields{"card_id": card.ID, "error": err.Error()}).Error("Card provider call failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			respondError(c, err)
			return
		}

		adminID := middleware.AdminID(c) // Local status changes only after the provider succeeded
		if err := cards.SetCardStatus(ctx, card.ID, status, adminID); err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{"admin_id": adminID, "card_id": card.ID, "status": status}).Info("Card status changed")
		c.JSON(http.StatusOK, gin.H{"success": true, "card_id": card.ID, "status": status})
	}
}
