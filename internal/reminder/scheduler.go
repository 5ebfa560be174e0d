package reminder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/mmynk/splitapp/internal/storage"
)

// Scheduler periodically reminds every debtor across all groups.
type Scheduler struct {
	cron     *cron.Cron
	store    storage.Store
	notifier *Notifier

	// runCtx is cancelled by Stop so an in-flight sweep ends before the
	// store is closed.
	runCtx context.Context
	cancel context.CancelFunc
}

// NewScheduler registers the run on a standard five-field cron spec
// (or a descriptor such as "@daily").
func NewScheduler(spec string, store storage.Store, notifier *Notifier) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		store:    store,
		notifier: notifier,
	}
	s.runCtx, s.cancel = context.WithCancel(context.Background())
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(s.runCtx) }); err != nil {
		s.cancel()
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Reminder scheduler started", "entries", len(s.cron.Entries()))
}

// Stop halts scheduling and waits for a running job to finish. If ctx ends
// first the job is cancelled, and Stop still waits for it to return.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		slog.Warn("Cancelling in-flight reminder run")
		s.cancel()
		<-done
	}
	s.cancel()
}

// RunOnce walks all groups and sends due reminders. Failures in one group
// are logged and do not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("Reminder run failed to list groups", "error", err)
		return 0
	}

	total := 0
	for _, g := range groups {
		if ctx.Err() != nil {
			slog.Warn("Reminder run cancelled", "sent", total)
			return total
		}
		n, err := s.notifier.RemindGroup(ctx, g)
		total += n
		if err != nil {
			slog.Error("Reminder run failed for group", "group_id", g.ID, "error", err)
		}
	}
	slog.Info("Reminder run finished", "groups", len(groups), "sent", total)
	return total
}
