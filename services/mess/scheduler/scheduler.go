package scheduler

import (
	"context"
	"messadmin/config"
	"messadmin/domain"
	"time"
)

// Scheduler runs the two recurring jobs: marking the day's attendance at
// noon and generating the previous month's bills shortly after midnight on
// the first. Both loops stop when the context is cancelled.
type Scheduler struct {
	attendanceUC domain.AttendanceUseCase
	billUC       domain.BillUseCase
	userRepo     domain.UserRepo
	now          func() time.Time
}

func New(attendanceUC domain.AttendanceUseCase, billUC domain.BillUseCase, userRepo domain.UserRepo) *Scheduler {
	return &Scheduler{
		attendanceUC: attendanceUC,
		billUC:       billUC,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.runDailyAttendance(ctx)
	go s.runMonthlyBilling(ctx)
}

func (s *Scheduler) runDailyAttendance(ctx context.Context) {
	log := config.GetLogrusInstance()
	for {
		next := nextDailyRun(s.now())
		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		count, err := s.attendanceUC.AutoMarkToday(ctx)
		if err != nil {
			log.WithError(err).Error("auto attendance run failed")
			continue
		}
		if count > 0 {
			log.WithField("teachers", count).Info("auto attendance marked")
		} else {
			log.Info("auto attendance skipped, day already marked")
		}
	}
}

func (s *Scheduler) runMonthlyBilling(ctx context.Context) {
	log := config.GetLogrusInstance()
	for {
		next := nextMonthlyRun(s.now())
		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		adminID, err := s.userRepo.FindAdminUserID(ctx)
		if err != nil {
			log.WithError(err).Error("monthly billing run failed, no admin account")
			continue
		}

		// The run fires just after the month rolls over, so the billed period
		// is the month that just ended.
		month, year := previousMonth(s.now())
		generated, failed := s.billUC.GenerateMonthlyBills(ctx, month, year, adminID)
		log.WithField("month", month).WithField("year", year).
			WithField("generated", generated).WithField("failed", len(failed)).
			Info("monthly billing run finished")
		for _, ferr := range failed {
			log.WithError(ferr).Error("bill generation failed")
		}
	}
}

// nextDailyRun is today at 12:00 if that is still ahead, otherwise tomorrow.
func nextDailyRun(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	if !run.After(now) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}

// nextMonthlyRun is 00:05 on the first of the next month. Computing the
// exact instant instead of sleeping a fixed interval keeps the run aligned
// with the calendar whatever the month length.
func nextMonthlyRun(now time.Time) time.Time {
	firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 5, 0, 0, now.Location())
	if now.Before(firstOfThis) {
		return firstOfThis
	}
	return firstOfThis.AddDate(0, 1, 0)
}

func previousMonth(now time.Time) (month, year int) {
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	return int(prev.Month()), prev.Year()
}
