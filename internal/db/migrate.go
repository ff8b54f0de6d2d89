package db

import (
	"wallet_admin/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// Models lists every table owned by the admin service
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Wallet{},
		&domain.LedgerEntry{},
		&domain.Transaction{},
		&domain.Setting{},
		&domain.FeatureFlag{},
		&domain.SupportTicket{},
		&domain.VirtualCard{},
		&domain.Asset{},
		&domain.Liability{},
	}
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
