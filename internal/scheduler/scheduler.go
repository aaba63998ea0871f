// Package scheduler runs the hourly review-reminder job.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/telugutor/backend/internal/logger"
)

// DueCounter reports per-learner counts of items whose review is due.
type DueCounter interface {
	LearnersWithDueItems(ctx context.Context) (map[string]int, error)
}

// TargetSource maps learners to their linked reminder channel.
type TargetSource interface {
	GetReminderTargets(ctx context.Context) (map[string]int64, error)
}

// Notifier delivers a reminder about due reviews.
type Notifier interface {
	SendReminder(chatID int64, dueCount int) error
}

// Scheduler manages the periodic reminder task.
type Scheduler struct {
	scheduler *gocron.Scheduler
	due       DueCounter
	targets   TargetSource
	notifier  Notifier
	log       *logger.Logger

	// Reminders only go out between these hours (local to the server).
	startHour int
	endHour   int
}

// New creates a scheduler. Reminders fire hourly inside the
// [startHour, endHour] window.
func New(due DueCounter, targets TargetSource, notifier Notifier, log *logger.Logger, startHour, endHour int) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		due:       due,
		targets:   targets,
		notifier:  notifier,
		log:       log.With("component", "scheduler"),
		startHour: startHour,
		endHour:   endHour,
	}
}

// Start begins running the reminder job in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().Hour()
	if currentHour < s.startHour || currentHour > s.endHour {
		s.log.Debug("outside notification window, skipping reminders",
			"hour", currentHour, "start", s.startHour, "end", s.endHour)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dueCounts, err := s.due.LearnersWithDueItems(ctx)
	if err != nil {
		s.log.Error("failed to count due items", "error", err)
		return
	}
	if len(dueCounts) == 0 {
		return
	}

	targets, err := s.targets.GetReminderTargets(ctx)
	if err != nil {
		s.log.Error("failed to load reminder targets", "error", err)
		return
	}

	for learnerID, count := range dueCounts {
		chatID, ok := targets[learnerID]
		if !ok {
			continue
		}
		if err := s.notifier.SendReminder(chatID, count); err != nil {
			s.log.Error("failed to send reminder", "learner_id", learnerID, "error", err)
		}
	}
}
