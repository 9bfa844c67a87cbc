package utils

import "time"

// BusinessDaysBetween counts the additional business days elapsed between
// start and end: weekdays from the start date (inclusive) up to the end date
// (exclusive), minus one, never below zero. Saturdays and Sundays are skipped.
// Holidays are intentionally not modeled; stored turnaround figures depend on
// this staying weekday-only.
func BusinessDaysBetween(start, end time.Time) int {
	startDay := truncateToUTCDate(start)
	endDay := truncateToUTCDate(end)

	if endDay.Before(startDay) {
		return 0
	}

	weekdays := 0
	for d := startDay; d.Before(endDay); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			weekdays++
		}
	}

	if weekdays == 0 {
		return 0
	}
	return weekdays - 1
}

// BusinessDaysSince is the business-day age of a timestamp relative to now.
func BusinessDaysSince(start, now time.Time) int {
	return BusinessDaysBetween(start, now)
}

func truncateToUTCDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
