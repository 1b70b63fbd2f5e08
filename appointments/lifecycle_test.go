package appointments

import (
	"testing"

	"medibook/config"
	"medibook/models"

	"github.com/stretchr/testify/require"
)

func TestBuildAppointment(t *testing.T) {
	user := models.User{
		UserID:   "u123",
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "hash-never-leaves",
		Phone:    "9876543210",
	}
	doctor := models.Doctor{
		DoctorID:   "d456",
		Name:       "Dr. Rao",
		Speciality: "Dermatologist",
		Fees:       60,
		Address:    models.Address{Line1: "12 Clinic Rd"},
	}

	appt := buildAppointment(user, doctor, "2024-01-10", "10:00 AM")

	require.Len(t, appt.AppointmentID, 22)
	require.Equal(t, "u123", appt.UserID)
	require.Equal(t, "d456", appt.DoctorID)
	require.Equal(t, "2024-01-10", appt.SlotDate)
	require.Equal(t, "10:00 AM", appt.SlotTime)
	require.Equal(t, float64(60), appt.Amount)
	require.Equal(t, models.PaymentPending, appt.Payment)
	require.False(t, appt.Cancelled)
	require.False(t, appt.IsCompleted)
	require.False(t, appt.BookedAt.IsZero())

	// snapshots, not references
	require.Equal(t, "Asha", appt.UserData.Name)
	require.Equal(t, "Dr. Rao", appt.DocData.Name)
	require.Equal(t, "Dermatologist", appt.DocData.Speciality)
	require.Equal(t, "12 Clinic Rd", appt.DocData.Address.Line1)
}

func TestAuthorizeCancel(t *testing.T) {
	appt := models.Appointment{AppointmentID: "a1", UserID: "u123"}

	require.NoError(t, authorizeCancel(appt, "u123"))
	require.ErrorIs(t, authorizeCancel(appt, "u999"), errNotOwner)
}

func TestActiveCancelFilterMatchesOnlyActive(t *testing.T) {
	// the cancel flip must be conditional on cancelled=false: a second
	// cancel racing the first must not match, or its slot release could
	// strip a re-admitted booking
	filter := activeCancelFilter("a1")

	require.Equal(t, "a1", filter["appointmentid"])
	require.Equal(t, false, filter["cancelled"])
	require.Len(t, filter, 2)
}

func TestReceiptQRPayloadRoundTrip(t *testing.T) {
	config.JwtSecret = []byte("test-secret")

	appt := models.Appointment{
		AppointmentID: "1234567890",
		DoctorID:      "d456",
		SlotDate:      "2024-01-10",
		SlotTime:      "10:00 AM",
	}

	payload := ReceiptQRPayload(appt)
	require.True(t, VerifyReceiptQRPayload(payload))

	// any byte flip in the data invalidates the signature
	tampered := "2" + payload[1:]
	require.False(t, VerifyReceiptQRPayload(tampered))

	require.False(t, VerifyReceiptQRPayload("no-signature"))
	require.False(t, VerifyReceiptQRPayload(""))
}
