package api

import (
	"fmt"
	"net/http"
	"time"

	"wallet_admin/internal/domain"
	"wallet_admin/internal/middleware"
	"wallet_admin/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// FlagRequest toggles one feature flag
type FlagRequest struct {
	FeatureName string `json:"feature_name"`
	Enabled     *bool  `json:"enabled"` // Pointer so a missing value is not read as false
}

// ListFlagsHandler returns {"flags": [...]}
func ListFlagsHandler(settings SettingsStore, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []domain.FeatureFlag
		if found, err := utils.GetCache(ctx, rdb, utils.FlagsCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"flags": cached})
			return
		}
		flags, err := settings.ListFeatureFlags(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		if flags == nil {
			flags = []domain.FeatureFlag{}
		}
		if err := utils.SetCache(ctx, rdb, utils.FlagsCacheKey, flags, ttl); err != nil {
			logrus.WithError(err).Warn("Failed to cache feature flags")
		}
		c.JSON(http.StatusOK, gin.H{"flags": flags})
	}
}

// SetFlagHandler creates or toggles a feature flag
func SetFlagHandler(settings SettingsStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FlagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("invalid request: %w", domain.ErrValidation))
			return
		}
		if req.Enabled == nil {
			respondError(c, fmt.Errorf("enabled is required: %w", domain.ErrValidation))
			return
		}
		adminID := middleware.AdminID(c)
		flag, err := settings.SetFeatureFlag(c.Request.Context(), req.FeatureName, *req.Enabled, adminID)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := utils.DeleteCache(c.Request.Context(), rdb, utils.FlagsCacheKey); err != nil {
			logrus.WithError(err).Warn("Failed to invalidate feature flag cache")
		}
		logrus.WithFields(logrus.Fields{
			"admin_id": adminID,
			"feature":  flag.FeatureName,
			"enabled":  flag.Enabled,
		}).Info("Feature flag updated")
		c.JSON(http.StatusOK, flag)
	}
}
