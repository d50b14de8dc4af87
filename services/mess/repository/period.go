package repository

import (
	"fmt"
	"time"
)

// dayOf normalizes a timestamp to its calendar day. Attendance dates are
// always stored this way so the (teacher, date) unique index behaves.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// monthRange returns the first instant of the month and the first instant of
// the next month. Queries use [start, next) so month length never matters.
func monthRange(month, year int) (start, next time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next = start.AddDate(0, 1, 0)
	return start, next
}

// billPeriodKey is the keyedMutex key for one teacher's billing period.
func billPeriodKey(teacherID, month, year int) string {
	return fmt.Sprintf("bill:%d:%d:%d", teacherID, month, year)
}
