// Package cases filters and summarises case lists for display.
package cases

import (
	"sort"
	"strings"
	"time"

	"github.com/casedesk/cli/internal/models"
)

// StatusAll matches every status
const StatusAll = "all"

// Filter selects cases by free-text search and status
type Filter struct {
	Search string
	Status string
}

// Matches reports whether c passes the filter. Search is a case-insensitive
// substring match over case number, title and client.
func (f Filter) Matches(c models.Case) bool {
	if f.Status != "" && f.Status != StatusAll && c.Status != f.Status {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.CaseNumber), term) ||
		strings.Contains(strings.ToLower(c.Title), term) ||
		strings.Contains(strings.ToLower(c.Client), term)
}

// Apply returns the cases that pass the filter, in their original order
func (f Filter) Apply(all []models.Case) []models.Case {
	out := make([]models.Case, 0, len(all))
	for _, c := range all {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// Stats counts cases by status. Urgent cases are open high-priority ones.
func Stats(all []models.Case) models.DashboardStats {
	s := models.DashboardStats{TotalCases: len(all)}
	for _, c := range all {
		switch c.Status {
		case models.StatusPending:
			s.PendingCases++
		case models.StatusClosed:
			s.ClosedCases++
		}
		if c.Priority == models.PriorityHigh && c.Status != models.StatusClosed {
			s.UrgentCases++
		}
	}
	return s
}

// Recent returns up to n open cases ordered by next hearing date
func Recent(all []models.Case, n int) []models.Case {
	open := make([]models.Case, 0, len(all))
	for _, c := range all {
		if c.Status != models.StatusClosed {
			open = append(open, c)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].NextHearing < open[j].NextHearing
	})
	if n >= 0 && len(open) > n {
		open = open[:n]
	}
	return open
}

// Upcoming returns up to n hearings on or after today (YYYY-MM-DD), soonest first
func Upcoming(hearings []models.Hearing, today string, n int) []models.Hearing {
	out := make([]models.Hearing, 0, len(hearings))
	for _, h := range hearings {
		if h.Date >= today {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return clock(out[i].Time) < clock(out[j].Time)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// BuildDashboard assembles the overview shown after login
func BuildDashboard(all []models.Case, hearings []models.Hearing, today string) models.Dashboard {
	return models.Dashboard{
		Stats:            Stats(all),
		RecentCases:      Recent(all, 5),
		UpcomingHearings: Upcoming(hearings, today, 5),
	}
}

// clock converts "02:15 PM" style times to minutes past midnight. Unparseable
// times sort last.
func clock(s string) int {
	t, err := time.Parse("03:04 PM", strings.TrimSpace(s))
	if err != nil {
		return 24 * 60
	}
	return t.Hour()*60 + t.Minute()
}
