package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/splitapp/internal/calculator"
	"github.com/mmynk/splitapp/internal/metrics"
	"github.com/mmynk/splitapp/internal/models"
	"github.com/mmynk/splitapp/internal/storage"
)

// DefaultCooldown is the minimum time between reminders for the same pair.
const DefaultCooldown = 24 * time.Hour

// Notifier resolves a settlement from current balances and sends the
// matching reminder through the throttle.
type Notifier struct {
	store    storage.Store
	sender   Sender
	throttle Throttle
	cooldown time.Duration
	metrics  *metrics.Metrics
}

// NewNotifier wires a notifier. A nil throttle means a process-local one.
func NewNotifier(store storage.Store, sender Sender, throttle Throttle, cooldown time.Duration, m *metrics.Metrics) *Notifier {
	if throttle == nil {
		throttle = NewMemoryThrottle()
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Notifier{store: store, sender: sender, throttle: throttle, cooldown: cooldown, metrics: m}
}

// Preview renders the reminder without sending it.
func (n *Notifier) Preview(ctx context.Context, group *models.Group, debtor, creditor string) (*Reminder, error) {
	expenses, err := n.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	settlements := calculator.ComputeSettlements(calculator.ComputeBalances(group.Members, expenses))
	s, ok := calculator.FindSettlement(settlements, debtor, creditor)
	if !ok {
		return nil, fmt.Errorf("%s to %s: %w", debtor, creditor, ErrNoSettlement)
	}
	return Build(group, s)
}

// Send renders and delivers the reminder for debtor -> creditor.
func (n *Notifier) Send(ctx context.Context, group *models.Group, debtor, creditor string) (*Reminder, error) {
	r, err := n.Preview(ctx, group, debtor, creditor)
	if err != nil {
		return nil, err
	}
	if err := n.deliver(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (n *Notifier) deliver(ctx context.Context, r *Reminder) error {
	ok, err := n.throttle.Allow(ctx, r.Key(), n.cooldown)
	if err != nil {
		n.metrics.ObserveReminder(metrics.ResultError)
		return fmt.Errorf("%w: throttle: %v", ErrDelivery, err)
	}
	if !ok {
		n.metrics.ObserveReminder(metrics.ResultThrottled)
		return fmt.Errorf("%s to %s: %w", r.Debtor, r.Creditor, ErrThrottled)
	}

	if err := n.sender.Send(ctx, r); err != nil {
		n.metrics.ObserveReminder(metrics.ResultError)
		if relErr := n.throttle.Release(ctx, r.Key()); relErr != nil {
			slog.Warn("Failed to release reminder throttle", "key", r.Key(), "error", relErr)
		}
		if errors.Is(err, ErrDelivery) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	n.metrics.ObserveReminder(metrics.ResultOK)
	return nil
}

// RemindGroup sends a reminder for every settlement in the group whose
// debtor has an email. Throttled pairs are skipped. It returns how many
// reminders went out.
func (n *Notifier) RemindGroup(ctx context.Context, group *models.Group) (int, error) {
	expenses, err := n.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to load expenses: %w", err)
	}

	sent := 0
	for _, s := range calculator.ComputeSettlements(calculator.ComputeBalances(group.Members, expenses)) {
		r, err := Build(group, s)
		if errors.Is(err, ErrNoEmail) {
			continue
		}
		if err != nil {
			return sent, err
		}

		err = n.deliver(ctx, r)
		if errors.Is(err, ErrThrottled) {
			continue
		}
		if err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}
