package api

import (
	"errors"
	"net/http"

	"wallet_admin/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// statusFor maps an error kind to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyCompleted):
		return http.StatusConflict
	default: // ErrBackend, ErrConfiguration and anything unclassified
		return http.StatusInternalServerError
	}
}

// respondError writes the {"error": ...} envelope. Backend details are logged, not returned.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && !errors.Is(err, domain.ErrConfiguration) {
		logrus.WithFields(logrus.Fields{"path": c.FullPath(), "error": err.Error()}).Error("Request failed")
		msg = "Internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}
