package api

import (
	"net/http"

	"wallet_admin/internal/domain"

	"github.com/gin-gonic/gin"
)

// NetWorthHandler returns a user's per-currency asset and liability totals
func NetWorthHandler(valuations ValuationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		totals, err := valuations.NetWorth(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if totals == nil {
			totals = []domain.CurrencyNetWorth{}
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "net_worth": totals})
	}
}
