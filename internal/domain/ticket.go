package domain

import (
	"time"

	"gorm.io/gorm"
)

// Ticket statuses. The only transition is open -> resolved.
const (
	TicketOpen     = "open"
	TicketResolved = "resolved"
)

// SupportTicket Model
type SupportTicket struct {
	ID         string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID     string     `gorm:"type:char(36);index" json:"user_id"`
	Email      string     `gorm:"size:191" json:"email"`   // Contact address for notifications
	Subject    string     `gorm:"size:255" json:"subject"`
	Message    string     `gorm:"type:text" json:"message"`
	Priority   string     `gorm:"size:16;default:normal" json:"priority"`
	Status     string     `gorm:"size:16;index;not null;default:open" json:"status"`
	ResolvedBy *string    `gorm:"type:char(36)" json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a uuid when the caller did not
func (t *SupportTicket) BeforeCreate(*gorm.DB) error {
	assignID(&t.ID)
	return nil
}
