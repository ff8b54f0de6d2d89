package domain

import (
	"time" // Completion timestamps

	"gorm.io/gorm" // GORM hooks
)

// Transaction statuses
const (
	TransactionPending   = "pending"   // Awaiting admin completion
	TransactionCompleted = "completed" // Credited to the wallet, immutable afterwards
	TransactionFailed    = "failed"    // Rejected by the payment flow
)

// Transaction Model
type Transaction struct {
	ID              string     `gorm:"type:char(36);primaryKey" json:"id"`          // Primary key (uuid)
	UserID          string     `gorm:"type:char(36);index;not null" json:"user_id"` // Owner of the transaction
	Amount          int64      `gorm:"not null" json:"amount"`                      // Amount in minor currency units
	TransactionType string     `gorm:"size:32" json:"transaction_type"`             // deposit, top_up, refund...
	Description     string     `gorm:"size:255" json:"description"`                 // Free text
	Status          string     `gorm:"size:16;index;not null;default:pending" json:"status"`
	Reference       string     `gorm:"size:64;index" json:"reference"`                   // External payment reference
	CompletedBy     *string    `gorm:"type:char(36)" json:"completed_by,omitempty"`      // Admin who completed it
	CompletedAt     *time.Time `json:"completed_at,omitempty"`                           // When it was completed
	CreatedAt       time.Time  `json:"created_at"`                                       // Creation time
	UpdatedAt       time.Time  `json:"updated_at"`                                       // Last update time
}

// BeforeCreate assigns a uuid when the caller did not
func (t *Transaction) BeforeCreate(*gorm.DB) error {
	assignID(&t.ID)
	return nil
}

// CompletionRequest identifies a pending transaction to credit
type CompletionRequest struct {
	TransactionID string
	UserID        string
	AdminUserID   string
}

// CompletionResult reports the balance movement of a completion
type CompletionResult struct {
	TransactionID   string `json:"transaction_id"`
	PreviousBalance int64  `json:"previous_balance"`
	NewBalance      int64  `json:"new_balance"`
	Amount          int64  `json:"amount"`
}
