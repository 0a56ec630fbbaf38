// Package timetable computes the weekly room × day × period grid from a
// flat list of sessions. Everything here is pure: inputs are snapshots and
// every call returns fresh values.
package timetable

import "github.com/alexanderramin/labtable/internal/domain"

// ComputeWeeks returns the consecutive seven-day weeks starting at first and
// continuing while a week's start is on or before last. An inverted range
// yields no weeks.
func ComputeWeeks(first, last domain.Date) []domain.Week {
	if first.After(last) {
		return nil
	}
	weeks := make([]domain.Week, 0, first.DaysUntil(last)/7+1)
	for cursor := first; !cursor.After(last); cursor = cursor.AddDays(7) {
		weeks = append(weeks, domain.Week{Start: cursor, End: cursor.AddDays(6)})
	}
	return weeks
}

// ComputeWeeksFromStrings parses both bounds as dd/MM/yyyy before calling
// ComputeWeeks. A malformed bound fails with a *domain.DateError.
func ComputeWeeksFromStrings(firstWeekStart, lastWeekEnd string) ([]domain.Week, error) {
	first, err := domain.ParseDate("firstWeekStart", firstWeekStart)
	if err != nil {
		return nil, err
	}
	last, err := domain.ParseDate("lastWeekEnd", lastWeekEnd)
	if err != nil {
		return nil, err
	}
	return ComputeWeeks(first, last), nil
}

// ResolveCurrentWeek returns the first week containing today. When today is
// outside every week it falls back to the first week; it reports false only
// when weeks is empty.
func ResolveCurrentWeek(weeks []domain.Week, today domain.Date) (domain.Week, bool) {
	if len(weeks) == 0 {
		return domain.Week{}, false
	}
	if i, ok := WeekContaining(weeks, today); ok {
		return weeks[i], true
	}
	return weeks[0], true
}

// WeekContaining returns the index of the first week containing d, without
// any fallback.
func WeekContaining(weeks []domain.Week, d domain.Date) (int, bool) {
	for i, w := range weeks {
		if w.Contains(d) {
			return i, true
		}
	}
	return 0, false
}

// WeekStartingOn returns the index of the week whose start is exactly d.
func WeekStartingOn(weeks []domain.Week, d domain.Date) (int, bool) {
	for i, w := range weeks {
		if w.Start == d {
			return i, true
		}
	}
	return 0, false
}

// OccurrenceOn returns the index of the week in which a session held on day
// falls on d. The occurrence date of a week is Start plus the day's
// offset, the same date the grid checks cancellations against; weeks need
// not start on a Monday.
func OccurrenceOn(weeks []domain.Week, day domain.DayOfWeek, d domain.Date) (int, bool) {
	i, ok := WeekContaining(weeks, d)
	if !ok {
		return 0, false
	}
	if date, known := weeks[i].DateOf(day); !known || date != d {
		return 0, false
	}
	return i, true
}
