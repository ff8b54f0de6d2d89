package api

import (
	"encoding/json"
	"fmt"
	"net/http" // HTTP status codes
	"time"

	"wallet_admin/internal/domain"
	"wallet_admin/internal/middleware"
	"wallet_admin/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"
)

// GetSettingsHandler returns every setting as a bare key -> value object
func GetSettingsHandler(settings SettingsStore, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached map[string]json.RawMessage
		// Serve from cache when present; a cache failure falls through to the store
		if found, err := utils.GetCache(ctx, rdb, utils.SettingsCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		values, err := settings.ListSettings(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := utils.SetCache(ctx, rdb, utils.SettingsCacheKey, values, ttl); err != nil {
			logrus.WithError(err).Warn("Failed to cache settings")
		}
		c.JSON(http.StatusOK, values)
	}
}

// UpdateSettingsHandler upserts every key of the body in one batch
func UpdateSettingsHandler(settings SettingsStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var values map[string]json.RawMessage
		if err := c.ShouldBindJSON(&values); err != nil {
			respondError(c, fmt.Errorf("body must be a JSON object of settings: %w", domain.ErrValidation))
			return
		}
		adminID := middleware.AdminID(c)
		keys, err := settings.UpsertSettings(c.Request.Context(), values, adminID)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := utils.DeleteCache(c.Request.Context(), rdb, utils.SettingsCacheKey); err != nil {
			logrus.WithError(err).Warn("Failed to invalidate settings cache")
		}
		logrus.WithFields(logrus.Fields{"admin_id": adminID, "keys": keys}).Info("Settings updated")
		c.JSON(http.StatusOK, gin.H{"success": true, "updated": keys})
	}
}
