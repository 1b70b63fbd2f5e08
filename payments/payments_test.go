package payments

import (
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/require"
)

func TestMarkPaid(t *testing.T) {
	appt := models.Appointment{Payment: models.PaymentPending}

	require.NoError(t, MarkPaid(&appt))
	require.Equal(t, models.PaymentCompleted, appt.Payment)

	// never twice
	require.ErrorIs(t, MarkPaid(&appt), ErrAlreadyPaid)
}

func TestMarkPaidCancelled(t *testing.T) {
	appt := models.Appointment{Payment: models.PaymentPending, Cancelled: true}

	require.ErrorIs(t, MarkPaid(&appt), ErrCancelled)
	require.Equal(t, models.PaymentPending, appt.Payment)
}

func TestMarkCompleted(t *testing.T) {
	appt := models.Appointment{Payment: models.PaymentCompleted}

	require.NoError(t, MarkCompleted(&appt))
	require.True(t, appt.IsCompleted)

	require.ErrorIs(t, MarkCompleted(&appt), ErrAlreadyComplete)
}

func TestMarkCompletedRequiresPayment(t *testing.T) {
	appt := models.Appointment{Payment: models.PaymentPending}

	require.ErrorIs(t, MarkCompleted(&appt), ErrNotPaid)
	require.False(t, appt.IsCompleted)
}

func TestMarkCompletedCancelled(t *testing.T) {
	appt := models.Appointment{Payment: models.PaymentCompleted, Cancelled: true}

	require.ErrorIs(t, MarkCompleted(&appt), ErrCancelled)
	require.False(t, appt.IsCompleted)
}
