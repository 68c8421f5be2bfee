package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/existflow/taskmaster/internal/logger"
	"github.com/existflow/taskmaster/internal/model"
)

// Source is where the scheduler reads tasks from; app.Session satisfies it
type Source interface {
	ListTasks() []model.Task
	ListCategories() []model.Category
}

// Scheduler wraps cron and sends a digest on each tick
type Scheduler struct {
	cron     *cron.Cron
	source   Source
	notifier Notifier
	now      func() time.Time
}

// NewScheduler creates a scheduler evaluating specs in loc
func NewScheduler(source Source, notifier Notifier, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		source:   source,
		notifier: notifier,
		now:      func() time.Time { return time.Now().In(loc) },
	}
}

// ValidateSpec checks a five-field cron spec
func ValidateSpec(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	return nil
}

// Schedule registers the digest job for spec, e.g. "0 8 * * *"
func (s *Scheduler) Schedule(spec string) (cron.EntryID, error) {
	if err := ValidateSpec(spec); err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			logger.Error("Reminder failed", logger.F("error", err))
		}
	})
}

// RunOnce builds and sends the digest now. Nothing is sent when no task
// needs attention; the returned bool reports whether a digest went out.
func (s *Scheduler) RunOnce(ctx context.Context) (bool, error) {
	d := BuildDigest(s.source.ListTasks(), s.now())
	if d.Empty() {
		logger.Debug("Reminder skipped, nothing due")
		return false, nil
	}
	if err := s.notifier.Notify(ctx, d.Render(s.source.ListCategories())); err != nil {
		return false, err
	}
	logger.Info("Reminder sent",
		logger.F("overdue", len(d.Overdue)),
		logger.F("due_today", len(d.DueToday)),
	)
	return true, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
