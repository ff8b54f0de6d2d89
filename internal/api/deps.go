// Package api holds the gin handlers and router of the admin API.
package api

import (
	"context"
	"encoding/json"
	"time"

	"wallet_admin/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// SettingsStore persists platform settings and feature flags
type SettingsStore interface {
	ListSettings(ctx context.Context) (map[string]json.RawMessage, error)
	UpsertSettings(ctx context.Context, values map[string]json.RawMessage, adminID string) ([]string, error)
	ListFeatureFlags(ctx context.Context) ([]domain.FeatureFlag, error)
	SetFeatureFlag(ctx context.Context, name string, enabled bool, adminID string) (*domain.FeatureFlag, error)
}

// TransactionStore reads and completes transactions
type TransactionStore interface {
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	CompleteTransaction(ctx context.Context, req domain.CompletionRequest) (*domain.CompletionResult, error)
}

// TicketStore reads and resolves support tickets
type TicketStore interface {
	ListTickets(ctx context.Context, status string) ([]domain.SupportTicket, error)
	ResolveTicket(ctx context.Context, id, adminID string) (*domain.SupportTicket, bool, error)
}

// CardStore reads cards and records their issuer state
type CardStore interface {
	GetCard(ctx context.Context, id string) (*domain.VirtualCard, error)
	SetCardStatus(ctx context.Context, id, status, adminID string) error
}

// UserStore looks up admin accounts
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// ValuationStore totals assets and liabilities
type ValuationStore interface {
	NetWorth(ctx context.Context, userID string) ([]domain.CurrencyNetWorth, error)
}

// Store is everything the router needs from persistence; *store.Store satisfies it
type Store interface {
	SettingsStore
	TransactionStore
	TicketStore
	CardStore
	UserStore
	ValuationStore
}

// CardProvider freezes and unfreezes cards at the issuer
type CardProvider interface {
	Configured() bool
	Freeze(ctx context.Context, providerRef string) error
	Unfreeze(ctx context.Context, providerRef string) error
}

// TicketNotifier tells a customer their ticket was resolved
type TicketNotifier interface {
	TicketResolved(ticket *domain.SupportTicket) error
}

// Deps wires the router
type Deps struct {
	Store      Store
	Redis      *redis.Client // Optional; nil disables caching
	CacheTTL   time.Duration
	JWTSecret  string
	JWTTTL     time.Duration
	Cards      CardProvider
	Notifier   TicketNotifier // Optional
	LoginRate  rate.Limit
	LoginBurst int
	Ping       func(ctx context.Context) error // Optional readiness probe for /health
}
