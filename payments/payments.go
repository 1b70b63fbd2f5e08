// Package payments owns the appointment status transitions. No concrete
// gateway is assumed; a Provider implementation is plugged in when one
// exists.
package payments

import (
	"context"
	"errors"

	"medibook/models"
)

var (
	ErrAlreadyPaid     = errors.New("appointment is already paid")
	ErrCancelled       = errors.New("appointment has been cancelled")
	ErrNotPaid         = errors.New("appointment has not been paid")
	ErrAlreadyComplete = errors.New("appointment is already completed")
)

// Provider is the gateway contract: create a checkout session for an
// appointment and confirm an asynchronous payment reference.
type Provider interface {
	CreateSession(ctx context.Context, appt models.Appointment) (sessionURL string, err error)
	Confirm(ctx context.Context, reference string) error
}

// MarkPaid validates the pending→completed payment transition.
// It never fires on a cancelled appointment and never fires twice.
func MarkPaid(appt *models.Appointment) error {
	if appt.Cancelled {
		return ErrCancelled
	}
	if appt.Payment == models.PaymentCompleted {
		return ErrAlreadyPaid
	}
	appt.Payment = models.PaymentCompleted
	return nil
}

// MarkCompleted flips isCompleted once, only on paid, non-cancelled
// appointments.
func MarkCompleted(appt *models.Appointment) error {
	if appt.Cancelled {
		return ErrCancelled
	}
	if appt.Payment != models.PaymentCompleted {
		return ErrNotPaid
	}
	if appt.IsCompleted {
		return ErrAlreadyComplete
	}
	appt.IsCompleted = true
	return nil
}
