package store

import (
	"context"
	"fmt"

	"wallet_admin/internal/domain" // Importing domain models
)

// GetCard finds a card by its id or by the issuer's reference
func (s *Store) GetCard(ctx context.Context, id string) (*domain.VirtualCard, error) {
	if id == "" {
		return nil, fmt.Errorf("card id is required: %w", domain.ErrValidation)
	}
	var card domain.VirtualCard
	if err := s.db.WithContext(ctx).Where("id = ? OR provider_ref = ?", id, id).Take(&card).Error; err != nil { // Operators paste either one
		return nil, readErr("card "+id, err)
	}
	return &card, nil
}

// SetCardStatus records the card state the issuer confirmed
func (s *Store) SetCardStatus(ctx context.Context, id, status, adminID string) error {
	err := s.db.WithContext(ctx).Model(&domain.VirtualCard{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"updated_by": adminID, // Last admin to act on the card
	}).Error
	if err != nil {
		return writeErr("card", err)
	}
	return nil
}
