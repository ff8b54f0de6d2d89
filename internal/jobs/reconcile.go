// Package jobs holds the scheduled background work of the admin service.
package jobs

import (
	"context"
	"fmt"
	"time"

	"wallet_admin/internal/domain"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DriftSource reports wallets whose balance disagrees with their ledger
type DriftSource interface {
	BalanceDrifts(ctx context.Context) ([]domain.BalanceDrift, error)
}

// Reconciler compares every wallet balance with the sum of its ledger entries
type Reconciler struct {
	source  DriftSource
	log     *logrus.Logger
	timeout time.Duration
}

// NewReconciler creates a reconciler over source
func NewReconciler(source DriftSource, log *logrus.Logger) *Reconciler {
	return &Reconciler{source: source, log: log, timeout: 5 * time.Minute}
}

// Run performs one reconciliation pass and returns the drifts it found
func (r *Reconciler) Run(ctx context.Context) ([]domain.BalanceDrift, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	drifts, err := r.source.BalanceDrifts(ctx)
	if err != nil {
		r.log.WithError(err).Error("Ledger reconciliation failed")
		return nil, err
	}
	for _, d := range drifts {
		r.log.WithFields(logrus.Fields{
			"user_id":      d.UserID,
			"balance":      d.Balance,
			"ledger_total": d.LedgerTotal,
			"difference":   d.Balance - d.LedgerTotal,
		}).Warn("Wallet balance does not match ledger")
	}
	r.log.WithField("drifts", len(drifts)).Info("Ledger reconciliation finished")
	return drifts, nil
}

// Schedule registers the reconciler on a new cron scheduler. The caller starts
// and stops the returned scheduler.
func Schedule(spec string, r *Reconciler) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, func() {
		_, _ = r.Run(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", spec, err)
	}
	return c, nil
}
