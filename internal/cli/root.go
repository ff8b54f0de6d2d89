// Package cli implements adminctl, the operator command line for the admin service.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"wallet_admin/internal/config"
	"wallet_admin/internal/db"
	"wallet_admin/internal/domain"
	"wallet_admin/internal/notify"
	"wallet_admin/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Backend is the part of the store adminctl drives
type Backend interface {
	Migrate() error
	CreateAdmin(ctx context.Context, email, passwordHash string) (*domain.User, error)
	ListSettings(ctx context.Context) (map[string]json.RawMessage, error)
	UpsertSettings(ctx context.Context, values map[string]json.RawMessage, adminID string) ([]string, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	CompleteTransaction(ctx context.Context, req domain.CompletionRequest) (*domain.CompletionResult, error)
	ListTickets(ctx context.Context, status string) ([]domain.SupportTicket, error)
	ResolveTicket(ctx context.Context, id, adminID string) (*domain.SupportTicket, bool, error)
}

type dbBackend struct {
	*store.Store
}

func (b dbBackend) Migrate() error {
	return db.Migrate(b.DB())
}

// openBackend connects to the configured database
var openBackend = func(cfg *config.Config) (Backend, error) {
	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	return dbBackend{store.New(conn)}, nil
}

// TicketNotifier tells a customer their ticket was resolved
type TicketNotifier interface {
	TicketResolved(ticket *domain.SupportTicket) error
}

// newNotifier builds the SMTP notifier; it is a no-op when SMTP is not configured
var newNotifier = func(cfg *config.Config) TicketNotifier {
	return notify.NewSender(cfg, logrus.StandardLogger())
}

type app struct {
	backend  Backend
	notifier TicketNotifier
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:               "adminctl",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Short:             "Wallet admin operator CLI",
		Long:              `Operator commands against the wallet admin database: migrations, admin accounts, settings, transactions and support tickets`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			config.SetupLogger(cfg)
			backend, err := openBackend(cfg)
			if err != nil {
				logrus.Errorf("failed to open database: %v", err)
				return err
			}
			a.backend = backend
			a.notifier = newNotifier(cfg)
			return nil
		},
	}
	rootCmd.AddCommand(
		a.migrateCmd(),
		a.adminCmd(),
		a.settingsCmd(),
		a.txCmd(),
		a.ticketsCmd(),
	)
	return rootCmd
}

// Execute runs adminctl with the process arguments
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
