package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GTDGit/todopro_api/internal/export"
	"github.com/GTDGit/todopro_api/internal/models"
)

// QuoteRange lists quotes created in a time range.
type QuoteRange interface {
	CreatedBetween(ctx context.Context, from, to time.Time) ([]models.Quote, error)
}

// LeadRange lists leads created in a time range.
type LeadRange interface {
	LeadsCreatedBetween(from, to time.Time) []models.Lead
	Stats() models.LeadStats
}

// ReportService builds the daily activity summary sent to the manager.
type ReportService struct {
	quotes  QuoteRange
	leads   LeadRange
	company string
	loc     *time.Location
}

func NewReportService(quotes QuoteRange, leads LeadRange, company string, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{quotes: quotes, leads: leads, company: company, loc: loc}
}

// DailyReport summarises the calendar day containing day, in the report
// time zone.
func (s *ReportService) DailyReport(ctx context.Context, day time.Time) (string, error) {
	local := day.In(s.loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 0, 1)

	quotes, err := s.quotes.CreatedBetween(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("failed to list quotes: %w", err)
	}
	leads := s.leads.LeadsCreatedBetween(from, to)
	stats := s.leads.Stats()

	var quoteCount, contractCount int
	var quoteValue, contractValue float64
	for _, q := range quotes {
		if q.IsContract() {
			contractCount++
			contractValue += q.FinalTotal
		} else {
			quoteCount++
			quoteValue += q.FinalTotal
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s - DAILY REPORT*\n", s.company)
	fmt.Fprintf(&b, "%s\n\n", from.Format("02/01/2006"))
	fmt.Fprintf(&b, "Quotes: %d (%s)\n", quoteCount, export.Euro(quoteValue))
	fmt.Fprintf(&b, "Contracts: %d (%s)\n", contractCount, export.Euro(contractValue))
	fmt.Fprintf(&b, "New leads: %d\n", len(leads))
	for _, l := range leads {
		src := l.Source
		if src == "" {
			src = "direct"
		}
		fmt.Fprintf(&b, "- %s (%s)\n", l.Name, src)
	}
	fmt.Fprintf(&b, "\nOpen leads: %d | Conversion rate: %.1f%%", stats.Active, stats.ConversionRate)
	return b.String(), nil
}
