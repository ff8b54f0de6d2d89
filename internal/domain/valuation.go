package domain

import (
	"time"

	"gorm.io/gorm"
)

// Asset Model: something of value a user declares
type Asset struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);index;not null" json:"user_id"`
	Type      string    `gorm:"size:32" json:"type"`
	Name      string    `gorm:"size:255" json:"name"`
	Value     int64     `gorm:"not null;check:value >= 0" json:"value"` // Minor units, never negative
	Currency  string    `gorm:"size:3;not null" json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a uuid when the caller did not
func (a *Asset) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// Liability Model: something a user owes
type Liability struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);index;not null" json:"user_id"`
	Type      string    `gorm:"size:32" json:"type"`
	Name      string    `gorm:"size:255" json:"name"`
	Value     int64     `gorm:"not null;check:value >= 0" json:"value"`
	Currency  string    `gorm:"size:3;not null" json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a uuid when the caller did not
func (l *Liability) BeforeCreate(*gorm.DB) error {
	assignID(&l.ID)
	return nil
}

// CurrencyNetWorth totals one currency; values in different currencies are never summed
type CurrencyNetWorth struct {
	Currency    string `json:"currency"`
	Assets      int64  `json:"assets"`
	Liabilities int64  `json:"liabilities"`
	Net         int64  `json:"net"`
}
