package service

import (
	"time"

	"github.com/pysgod/MarmaraPMS-sub000/internal/dto"
)

const dayFormat = "2006-01-02"

// monthRange returns the first and last day of a month as date-only values.
func monthRange(year, month int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// buildMonthDays derives the calendar row for a month. Saturday and Sunday
// carry the weekend flag.
func buildMonthDays(year, month int) []dto.CalendarDay {
	first, last := monthRange(year, month)
	days := make([]dto.CalendarDay, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		days = append(days, dto.CalendarDay{
			Day:     d.Day(),
			Weekday: wd.String(),
			Date:    d.Format(dayFormat),
			Weekend: wd == time.Saturday || wd == time.Sunday,
		})
	}
	return days
}

// parseDay parses an ISO date string into a date-only value.
func parseDay(s string) (time.Time, error) {
	return time.Parse(dayFormat, s)
}

// dateOnly truncates a timestamp to its calendar day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
