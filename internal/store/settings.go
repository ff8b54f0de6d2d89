package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort" // Stable key order in responses

	"wallet_admin/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause" // Upsert clauses
)

// ListSettings returns every setting as a key -> value map
func (s *Store) ListSettings(ctx context.Context) (map[string]json.RawMessage, error) {
	var rows []domain.Setting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, readErr("settings", err)
	}
	out := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		out[row.Key] = json.RawMessage(row.Value) // Stored verbatim, returned verbatim
	}
	return out, nil
}

// UpsertSettings writes all values in one transaction; either every key is
// written or none is. It returns the written keys in sorted order.
func (s *Store) UpsertSettings(ctx context.Context, values map[string]json.RawMessage, adminID string) ([]string, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no settings supplied: %w", domain.ErrValidation)
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		if key == "" {
			return nil, fmt.Errorf("setting key must not be empty: %w", domain.ErrValidation)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]domain.Setting, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, domain.Setting{Key: key, Value: domain.RawJSON(values[key]), UpdatedBy: adminID})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}}, // Unique on key
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return nil, writeErr("settings", err)
	}
	return keys, nil
}

// ListFeatureFlags returns every flag ordered by name
func (s *Store) ListFeatureFlags(ctx context.Context) ([]domain.FeatureFlag, error) {
	var flags []domain.FeatureFlag
	if err := s.db.WithContext(ctx).Order("feature_name asc").Find(&flags).Error; err != nil {
		return nil, readErr("feature flags", err)
	}
	return flags, nil
}

// SetFeatureFlag creates or toggles a flag by name
func (s *Store) SetFeatureFlag(ctx context.Context, name string, enabled bool, adminID string) (*domain.FeatureFlag, error) {
	if name == "" {
		return nil, fmt.Errorf("feature_name is required: %w", domain.ErrValidation)
	}
	flag := domain.FeatureFlag{FeatureName: name, Enabled: enabled, UpdatedBy: adminID}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "feature_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_by", "updated_at"}),
	}).Create(&flag).Error
	if err != nil {
		return nil, writeErr("feature flag", err)
	}
	// Reload so an existing flag keeps reporting its original id
	var saved domain.FeatureFlag
	if err := s.db.WithContext(ctx).Where("feature_name = ?", name).Take(&saved).Error; err != nil {
		return nil, readErr("feature flag", err)
	}
	return &saved, nil
}
