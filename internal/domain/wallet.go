package domain

import (
	"time"

	"gorm.io/gorm"
)

// Wallet Model
type Wallet struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`               // Primary key (uuid)
	UserID    string    `gorm:"type:char(36);uniqueIndex;not null" json:"user_id"` // One wallet per user
	Balance   int64     `gorm:"not null;default:0" json:"balance"`                // Balance in minor units
	Currency  string    `gorm:"size:3;not null;default:USD" json:"currency"`      // ISO 4217 code
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a uuid when the caller did not
func (w *Wallet) BeforeCreate(*gorm.DB) error {
	assignID(&w.ID)
	return nil
}

// Ledger entry types
const (
	EntryOpening = "opening" // Balance the wallet carried before its first ledger entry
	EntryCredit  = "credit"
	EntryDebit   = "debit"
)

// LedgerEntry is an append-only record of one balance movement.
// A wallet balance must always equal the sum of its entries.
type LedgerEntry struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        string    `gorm:"type:char(36);index;not null" json:"user_id"`
	TransactionID *string   `gorm:"type:char(36);uniqueIndex" json:"transaction_id"` // At most one entry per transaction; nil for opening entries
	Amount        int64     `gorm:"not null" json:"amount"`                           // Signed amount
	BalanceAfter  int64     `gorm:"not null" json:"balance_after"`
	EntryType     string    `gorm:"size:16;not null" json:"entry_type"`
	CreatedBy     string    `gorm:"type:char(36)" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// BeforeCreate assigns a uuid when the caller did not
func (e *LedgerEntry) BeforeCreate(*gorm.DB) error {
	assignID(&e.ID)
	return nil
}

// BalanceDrift is a wallet whose balance disagrees with its ledger
type BalanceDrift struct {
	UserID      string `json:"user_id"`
	Balance     int64  `json:"balance"`
	LedgerTotal int64  `json:"ledger_total"`
}
