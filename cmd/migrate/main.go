package main

import (
	"wallet_admin/internal/config" // Custom import path (Config)
	"wallet_admin/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	config.SetupLogger(cfg)

	conn, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		logrus.Fatalf("Migration failed: %v", err)
	}
}
