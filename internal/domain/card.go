package domain

import (
	"time"

	"gorm.io/gorm"
)

// Card statuses
const (
	CardActive = "active"
	CardFrozen = "frozen"
)

// VirtualCard Model: a card issued by the external card provider
type VirtualCard struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string    `gorm:"type:char(36);index;not null" json:"user_id"`
	ProviderRef string    `gorm:"size:64;index" json:"provider_ref"` // Card id at the issuer
	Last4       string    `gorm:"size:4" json:"last4"`
	Status      string    `gorm:"size:16;not null;default:active" json:"status"`
	UpdatedBy   string    `gorm:"type:char(36)" json:"updated_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a uuid when the caller did not
func (c *VirtualCard) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// ProviderID is the id the issuer knows the card by
func (c *VirtualCard) ProviderID() string {
	if c.ProviderRef != "" {
		return c.ProviderRef
	}
	return c.ID
}
