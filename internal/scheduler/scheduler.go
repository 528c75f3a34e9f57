// Package scheduler runs the background polling loop: a fixed tick checks
// a job table and executes whatever is due. Jobs are independent; one
// failing or panicking never stops the loop.
package scheduler

import (
	"context"
	"log"
	"time"

	"dosebuddy-backend/internal/notify"

	"gorm.io/gorm"
)

const (
	// TickInterval must stay at least as fine as the finest job interval,
	// and no coarser than the reminder's one-minute match window.
	TickInterval = 20 * time.Second

	// JobTimeout bounds each job run so a stalled messaging-provider call
	// cannot wedge the loop.
	JobTimeout = 30 * time.Second
)

// JobFunc is one schedulable unit of work.
type JobFunc func(ctx context.Context, now time.Time) error

// Job is due either on a fixed interval (Every) or once daily at a
// wall-clock time (At, "HH:MM"), whichever is set.
type Job struct {
	Name  string
	Every time.Duration
	At    string
	Run   JobFunc

	lastRun time.Time
}

// due reports whether the job should run at now. Daily jobs fire on the
// first tick at or after their wall-clock time, so a late tick still runs
// them instead of skipping the day.
func (j *Job) due(now time.Time) bool {
	if j.Every > 0 {
		return j.lastRun.IsZero() || now.Sub(j.lastRun) >= j.Every
	}

	hour, minute, ok := ParseClock(j.At)
	if !ok {
		return false
	}
	target := instantToday(hour, minute, now)
	if now.Before(target) {
		return false
	}
	return j.lastRun.Before(target)
}

// Loop owns the background ticker. It alternates between sleeping and
// running due jobs; it has no other states.
type Loop struct {
	Jobs []*Job
}

// New wires the standard job table: the missed-dose evaluator and dose
// reminder every 30 seconds, the low-stock check and daily summary once a
// day at their configured times.
func New(db *gorm.DB, dispatcher *notify.Dispatcher, lowStockAt, summaryAt string) *Loop {
	evaluator := &Evaluator{DB: db, Dispatcher: dispatcher}
	reminder := &Reminder{DB: db, Dispatcher: dispatcher}
	lowStock := &LowStockChecker{DB: db, Dispatcher: dispatcher}
	summary := &SummaryJob{DB: db, Dispatcher: dispatcher}

	return &Loop{
		Jobs: []*Job{
			{Name: "missed-dose-check", Every: 30 * time.Second, Run: evaluator.Evaluate},
			{Name: "dose-reminder", Every: 30 * time.Second, Run: reminder.Run},
			{Name: "low-stock-check", At: lowStockAt, Run: lowStock.Run},
			{Name: "daily-summary", At: summaryAt, Run: summary.Run},
		},
	}
}

// seedDaily settles daily jobs whose wall-clock time already passed today,
// so a process restarted after that time does not re-send the day's
// notification.
func (l *Loop) seedDaily(now time.Time) {
	for _, job := range l.Jobs {
		if job.Every > 0 {
			continue
		}
		hour, minute, ok := ParseClock(job.At)
		if !ok {
			continue
		}
		if !now.Before(instantToday(hour, minute, now)) {
			job.lastRun = now
		}
	}
}

// Start launches the loop on its own goroutine. It runs until ctx is
// cancelled, which in practice is the lifetime of the process.
func (l *Loop) Start(ctx context.Context) {
	l.seedDaily(time.Now())
	go func() {
		ticker := time.NewTicker(TickInterval)
		defer ticker.Stop()

		log.Println("Scheduler started")
		for {
			select {
			case <-ctx.Done():
				log.Println("Scheduler stopped")
				return
			case <-ticker.C:
				l.RunDue(ctx, time.Now())
			}
		}
	}()
}

// RunDue executes every due job sequentially, each under its own timeout.
func (l *Loop) RunDue(ctx context.Context, now time.Time) {
	for _, job := range l.Jobs {
		if !job.due(now) {
			continue
		}
		job.lastRun = now
		l.runOne(ctx, job, now)
	}
}

func (l *Loop) runOne(ctx context.Context, job *Job, now time.Time) {
	jobCtx, cancel := context.WithTimeout(ctx, JobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("scheduler: job %s panicked: %v", job.Name, r)
		}
	}()

	if err := job.Run(jobCtx, now); err != nil {
		log.Printf("scheduler: job %s failed: %v", job.Name, err)
	}
}
