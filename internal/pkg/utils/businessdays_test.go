package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDaysBetween(t *testing.T) {
	t.Run("Same Instant", func(t *testing.T) {
		d := date(2025, time.January, 6)
		assert.Equal(t, 0, BusinessDaysBetween(d, d), "same day should count zero business days")
	})

	t.Run("Adjacent Weekdays", func(t *testing.T) {
		// Thursday to Friday: one weekday spanned, minus one.
		thursday := date(2025, time.January, 2)
		friday := date(2025, time.January, 3)
		assert.Equal(t, 0, BusinessDaysBetween(thursday, friday))
	})

	t.Run("Full Week", func(t *testing.T) {
		// Monday to the next Monday spans five weekdays, minus one.
		monday := date(2025, time.January, 6)
		nextMonday := date(2025, time.January, 13)
		assert.Equal(t, 4, BusinessDaysBetween(monday, nextMonday))
	})

	t.Run("Weekend Is Skipped", func(t *testing.T) {
		// Thu Jan 2 2025 .. Wed Jan 8 2025: Thu, Fri, Mon, Tue spanned.
		assert.Equal(t, 3, BusinessDaysBetween(date(2025, time.January, 2), date(2025, time.January, 8)))
	})

	t.Run("End Before Start", func(t *testing.T) {
		assert.Equal(t, 0, BusinessDaysBetween(date(2025, time.March, 10), date(2025, time.March, 3)))
	})

	t.Run("Weekend To Weekend", func(t *testing.T) {
		// Saturday to Sunday spans no weekdays at all.
		saturday := date(2025, time.January, 4)
		sunday := date(2025, time.January, 5)
		assert.Equal(t, 0, BusinessDaysBetween(saturday, sunday))
	})

	t.Run("Intraday Times Are Ignored", func(t *testing.T) {
		start := time.Date(2025, time.January, 6, 23, 59, 0, 0, time.UTC)
		end := time.Date(2025, time.January, 13, 0, 1, 0, 0, time.UTC)
		assert.Equal(t, 4, BusinessDaysBetween(start, end), "only calendar dates should matter")
	})
}

func TestBusinessDaysSince(t *testing.T) {
	created := date(2025, time.January, 6)
	now := date(2025, time.January, 20)
	assert.Equal(t, 9, BusinessDaysSince(created, now))
}
