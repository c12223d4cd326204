package reservation

import "errors"

var (
	ErrNotFound            = errors.New("reservation not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrBungalowNotFound    = errors.New("bungalow not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrServiceLineNotFound = errors.New("service entry not found")

	ErrInvalidDates = errors.New("check-out date must be after check-in date")
	ErrPastCheckIn  = errors.New("check-in date cannot be in the past")
	ErrDatesOverlap = errors.New("the selected dates overlap another reservation")

	ErrPaymentExceedsTotal     = errors.New("payment would exceed the total price")
	ErrInvalidStatusTransition = errors.New("operation not allowed in the current status")
	ErrAlreadyCancelled        = errors.New("reservation is already cancelled")
	ErrAlreadyConfirmed        = errors.New("reservation is already confirmed")
	ErrConfirmationExpired     = errors.New("confirmation window has expired")
	ErrTermsNotAccepted        = errors.New("terms must be accepted")

	ErrCodeCollision = errors.New("could not allocate a unique reservation code")
)
