package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDailyRun(t *testing.T) {
	morning := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC), nextDailyRun(morning))

	afternoon := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC), nextDailyRun(afternoon))

	// month rollover
	endOfMonth := time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC), nextDailyRun(endOfMonth))
}

func TestNextMonthlyRun(t *testing.T) {
	midMonth := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 5, 0, 0, time.UTC), nextMonthlyRun(midMonth))

	// just after midnight on the first, before the run fires
	early := time.Date(2025, 7, 1, 0, 2, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 5, 0, 0, time.UTC), nextMonthlyRun(early))

	// exactly at the trigger the next run is a month out
	atTrigger := time.Date(2025, 7, 1, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 5, 0, 0, time.UTC), nextMonthlyRun(atTrigger))

	// December rolls into January
	december := time.Date(2025, 12, 20, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 5, 0, 0, time.UTC), nextMonthlyRun(december))
}

func TestPreviousMonth(t *testing.T) {
	month, year := previousMonth(time.Date(2025, 7, 1, 0, 5, 0, 0, time.UTC))
	assert.Equal(t, 6, month)
	assert.Equal(t, 2025, year)

	month, year = previousMonth(time.Date(2025, 1, 1, 0, 5, 0, 0, time.UTC))
	assert.Equal(t, 12, month)
	assert.Equal(t, 2024, year)
}
