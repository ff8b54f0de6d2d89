package store

import (
	"context"
	"fmt"
	"time"

	"wallet_admin/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause" // Row locking
)

// ListTickets returns tickets newest first, optionally filtered by status
func (s *Store) ListTickets(ctx context.Context, status string) ([]domain.SupportTicket, error) {
	q := s.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		if status != domain.TicketOpen && status != domain.TicketResolved {
			return nil, fmt.Errorf("unknown ticket status %q: %w", status, domain.ErrValidation)
		}
		q = q.Where("status = ?", status)
	}
	var tickets []domain.SupportTicket
	if err := q.Find(&tickets).Error; err != nil {
		return nil, readErr("support tickets", err)
	}
	return tickets, nil
}

// ResolveTicket marks a ticket resolved. Resolving an already resolved ticket
// succeeds without touching it; changed reports whether this call resolved it.
func (s *Store) ResolveTicket(ctx context.Context, id, adminID string) (ticket *domain.SupportTicket, changed bool, err error) {
	if id == "" {
		return nil, false, fmt.Errorf("ticket id is required: %w", domain.ErrValidation)
	}
	var t domain.SupportTicket
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).Take(&t).Error; err != nil {
			return readErr("support ticket "+id, err)
		}
		if t.Status == domain.TicketResolved {
			return nil // Idempotent: nothing to write
		}
		now := time.Now()
		err := tx.Model(&domain.SupportTicket{}).Where("id = ?", id).Updates(map[string]any{
			"status":      domain.TicketResolved,
			"resolved_by": adminID,
			"resolved_at": now,
		}).Error
		if err != nil {
			return err
		}
		t.Status = domain.TicketResolved
		t.ResolvedBy = &adminID
		t.ResolvedAt = &now
		changed = true // Callers notify only on this transition
		return nil
	})
	if err != nil {
		return nil, false, writeErr("support ticket", err)
	}
	return &t, changed, nil
}
