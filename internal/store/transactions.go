package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet_admin/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetTransaction loads one transaction by id
func (s *Store) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	var txn domain.Transaction
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&txn).Error; err != nil {
		return nil, readErr("transaction "+id, err)
	}
	return &txn, nil
}

// CompleteTransaction credits a pending transaction to its owner's wallet.
//
// The status flip is a compare-and-set on status = pending, so of two
// concurrent calls only one can win; the loser sees ErrAlreadyCompleted.
// The status change, the balance write and the ledger entry commit together.
func (s *Store) CompleteTransaction(ctx context.Context, req domain.CompletionRequest) (*domain.CompletionResult, error) {
	if req.TransactionID == "" || req.UserID == "" || req.AdminUserID == "" {
		return nil, fmt.Errorf("transactionId, userId and adminUserId are required: %w", domain.ErrValidation)
	}

	var result domain.CompletionResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		// Compare-and-set on status: only one caller can flip pending -> completed
		res := tx.Model(&domain.Transaction{}).
			Where("id = ? AND user_id = ? AND status = ?", req.TransactionID, req.UserID, domain.TransactionPending).
			Updates(map[string]any{
				"status":       domain.TransactionCompleted,
				"completed_by": req.AdminUserID,
				"completed_at": now,
			})
		if res.Error != nil {
			return res.Error // Database failure, rolls back
		}
		if res.RowsAffected == 0 {
			return whyNotPending(tx, req) // Lost the race, or never pending
		}

		var txn domain.Transaction // Reload for the amount
		if err := tx.Where("id = ?", req.TransactionID).Take(&txn).Error; err != nil {
			return err
		}
		if txn.Amount <= 0 {
			return fmt.Errorf("transaction %s has non-positive amount %d: %w", txn.ID, txn.Amount, domain.ErrValidation)
		}

		wallet, err := lockWallet(tx, req.UserID) // Row lock held until commit
		if err != nil {
			return err
		}
		previous := wallet.Balance
		if err := openLedger(tx, wallet, req.AdminUserID); err != nil {
			return err
		}

		// Credit the wallet
		if err := tx.Model(wallet).Update("balance", gorm.Expr("balance + ?", txn.Amount)).Error; err != nil {
			return err
		}

		entry := domain.LedgerEntry{
			UserID:        req.UserID,
			TransactionID: &txn.ID,
			Amount:        txn.Amount,
			BalanceAfter:  previous + txn.Amount,
			EntryType:     domain.EntryCredit,
			CreatedBy:     req.AdminUserID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err // Unique transaction_id: a transaction is never credited twice
		}

		result = domain.CompletionResult{
			TransactionID:   txn.ID,
			PreviousBalance: previous,
			NewBalance:      previous + txn.Amount,
			Amount:          txn.Amount,
		}
		return nil
	})
	if err != nil {
		return nil, writeErr("transaction completion", err)
	}
	return &result, nil
}

// lockWallet loads the user's wallet FOR UPDATE, creating an empty one first
// when the user has none. A concurrent creator wins the insert; both callers
// then lock the same row.
func lockWallet(tx *gorm.DB, userID string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("user_id = ?", userID).Take(&wallet).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return &wallet, err
	}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&domain.Wallet{UserID: userID}).Error
	if err != nil {
		return nil, err
	}
	var created domain.Wallet // Fresh value so the lookup is by user_id only
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("user_id = ?", userID).Take(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// openLedger records the balance a wallet carried before its first ledger
// entry, so the balance keeps equalling the sum of the entries
func openLedger(tx *gorm.DB, wallet *domain.Wallet, adminID string) error {
	if wallet.Balance == 0 {
		return nil // Nothing to carry over
	}
	var entries int64
	if err := tx.Model(&domain.LedgerEntry{}).Where("user_id = ?", wallet.UserID).Count(&entries).Error; err != nil {
		return err
	}
	if entries > 0 {
		return nil // Already opened, or funded through the ledger
	}
	opening := domain.LedgerEntry{
		UserID:       wallet.UserID,
		Amount:       wallet.Balance,
		BalanceAfter: wallet.Balance,
		EntryType:    domain.EntryOpening,
		CreatedBy:    adminID,
	}
	return tx.Create(&opening).Error
}

// whyNotPending explains a compare-and-set that matched no row
func whyNotPending(tx *gorm.DB, req domain.CompletionRequest) error {
	var txn domain.Transaction
	if err := tx.Where("id = ?", req.TransactionID).Take(&txn).Error; err != nil {
		return readErr("transaction "+req.TransactionID, err)
	}
	if txn.UserID != req.UserID {
		return fmt.Errorf("transaction %s does not belong to user %s: %w", txn.ID, req.UserID, domain.ErrValidation)
	}
	return fmt.Errorf("transaction %s is %s: %w", txn.ID, txn.Status, domain.ErrAlreadyCompleted)
}

// BalanceDrifts lists wallets whose balance differs from the sum of their ledger entries
func (s *Store) BalanceDrifts(ctx context.Context) ([]domain.BalanceDrift, error) {
	var drifts []domain.BalanceDrift
	err := s.db.WithContext(ctx).Raw(`
		SELECT w.user_id AS user_id, w.balance AS balance, COALESCE(SUM(l.amount), 0) AS ledger_total
		FROM wallets w
		LEFT JOIN ledger_entries l ON l.user_id = w.user_id
		GROUP BY w.user_id, w.balance
		HAVING w.balance <> COALESCE(SUM(l.amount), 0)`).Scan(&drifts).Error
	if err != nil {
		return nil, readErr("ledger totals", err)
	}
	return drifts, nil
}
