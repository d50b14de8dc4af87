package domain

import "errors"

var (
	// ErrNoMealsSelected rejects attendance writes with all three flags false.
	ErrNoMealsSelected = errors.New("at least one meal must be selected")

	ErrNotFound = errors.New("record not found")

	// ErrAlreadyPaid guards settled bills against regeneration, double
	// payment and token stamping.
	ErrAlreadyPaid = errors.New("bill is already paid")

	// ErrDuplicatePending blocks a second open dispute on the same
	// attendance record.
	ErrDuplicatePending = errors.New("a pending dispute already exists for this attendance record")

	ErrAlreadyResolved = errors.New("dispute has already been resolved")

	// ErrConfigMissing means billing cannot run until rates are configured.
	ErrConfigMissing = errors.New("billing configuration has not been set up")

	ErrPaymentDeclined = errors.New("payment was declined")
)
