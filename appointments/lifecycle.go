package appointments

import (
	"errors"
	"time"

	"medibook/models"
	"medibook/utils"

	"go.mongodb.org/mongo-driver/bson"
)

var errNotOwner = errors.New("unauthorized action")

// buildAppointment assembles the record inserted on booking: references by
// identity plus denormalized snapshots of the user and doctor as they are
// right now, and the doctor's current fee as the amount.
func buildAppointment(user models.User, doctor models.Doctor, slotDate, slotTime string) models.Appointment {
	return models.Appointment{
		AppointmentID: utils.GenerateRandomDigitString(22),
		UserID:        user.UserID,
		DoctorID:      doctor.DoctorID,
		SlotDate:      slotDate,
		SlotTime:      slotTime,
		UserData:      user.Profile(),
		DocData: models.DoctorRef{
			DoctorID:   doctor.DoctorID,
			Name:       doctor.Name,
			Image:      doctor.Image,
			Speciality: doctor.Speciality,
			Address:    doctor.Address,
		},
		Amount:   doctor.Fees,
		BookedAt: time.Now(),
		Payment:  models.PaymentPending,
	}
}

// authorizeCancel checks the ownership precondition: only the booking user
// may cancel. A mismatch is an authorization failure, not a not-found.
func authorizeCancel(appt models.Appointment, callerID string) error {
	if appt.UserID != callerID {
		return errNotOwner
	}
	return nil
}

// activeCancelFilter matches the appointment only while it is still
// active. Two concurrent cancels then flip the flag at most once, and
// only the winner runs the slot release; an unconditional flip would let
// the loser $pull a slot a new booking re-admitted in between.
func activeCancelFilter(appointmentID string) bson.M {
	return bson.M{"appointmentid": appointmentID, "cancelled": false}
}
