package api

import (
	"fmt"
	"net/http"

	"wallet_admin/internal/domain"
	"wallet_admin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ResolveTicketRequest names the ticket to resolve
type ResolveTicketRequest struct {
	ID string `json:"id"`
}

// ListTicketsHandler returns tickets newest first, optionally filtered by ?status=
func ListTicketsHandler(tickets TicketStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := tickets.ListTickets(c.Request.Context(), c.Query("status"))
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.SupportTicket{}
		}
		c.JSON(http.StatusOK, gin.H{"tickets": list})
	}
}

// ResolveTicketHandler marks a ticket resolved. Repeating the call succeeds
// and leaves the ticket as it is.
func ResolveTicketHandler(tickets TicketStore, notifier TicketNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResolveTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("invalid request: %w", domain.ErrValidation))
			return
		}
		adminID := middleware.AdminID(c)
		ticket, changed, err := tickets.ResolveTicket(c.Request.Context(), req.ID, adminID)
		if err != nil {
			respondError(c, err)
			return
		}
		if changed {
			logrus.WithFields(logrus.Fields{"admin_id": adminID, "ticket_id": ticket.ID}).Info("Support ticket resolved")
			if notifier != nil {
				// The resolution stands even when the email does not go out
				if err := notifier.TicketResolved(ticket); err != nil {
					logrus.WithFields(logrus.Fields{"ticket_id": ticket.ID, "error": err.Error()}).Warn("Resolution email failed")
				}
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "ticket": ticket})
	}
}
