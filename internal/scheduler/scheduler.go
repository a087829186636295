package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ReportBuilder renders the daily activity report.
type ReportBuilder interface {
	DailyReport(ctx context.Context, day time.Time) (string, error)
}

// Sender delivers a text message.
type Sender interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// Scheduler runs the daily report job.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	reports ReportBuilder
	sender  Sender
	to      string
	now     func() time.Time
}

// New creates a scheduler. spec is a standard five-field cron expression
// evaluated in loc.
func New(spec string, loc *time.Location, reports ReportBuilder, sender Sender, to string) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		spec:    spec,
		reports: reports,
		sender:  sender,
		to:      to,
		now:     time.Now,
	}
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sendDailyReport); err != nil {
		return fmt.Errorf("failed to schedule daily report: %w", err)
	}
	s.cron.Start()
	log.Info().Str("spec", s.spec).Str("to", s.to).Msg("Scheduler started")
	return nil
}

// Stop stops the cron loop and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) sendDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := s.RunDailyReport(ctx); err != nil {
		log.Error().Err(err).Msg("Daily report failed")
	}
}

// RunDailyReport builds today's report and sends it.
func (s *Scheduler) RunDailyReport(ctx context.Context) error {
	report, err := s.reports.DailyReport(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to build daily report: %w", err)
	}
	id, err := s.sender.SendText(ctx, s.to, report)
	if err != nil {
		return fmt.Errorf("failed to send daily report: %w", err)
	}
	log.Info().Str("message_id", id).Msg("Daily report sent")
	return nil
}
