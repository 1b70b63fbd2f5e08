package appointments

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"medibook/db"
	"medibook/models"
	"medibook/mq"
	"medibook/payments"
	"medibook/slots"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Ledger is the slot admission authority. Swapped for a MemLedger in
// tests; main wires the Mongo implementation.
var Ledger slots.Ledger = slots.NewMongoLedger()

// Book reserves the (doctor, date, time) slot and creates the appointment.
// Admission happens in the ledger as a single conditional store update, so
// concurrent requests for the same slot cannot both pass.
func Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		DocID    string `json:"docId"`
		SlotDate string `json:"slotDate"`
		SlotTime string `json:"slotTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.DocID == "" || input.SlotDate == "" || input.SlotTime == "" {
		utils.Fail(w, http.StatusBadRequest, "Missing details")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.Fail(w, http.StatusNotFound, "User not found")
		return
	}

	err := Ledger.Reserve(ctx, input.DocID, input.SlotDate, input.SlotTime)
	switch {
	case err == nil:
		// admitted
	case err == slots.ErrDoctorNotFound:
		utils.Fail(w, http.StatusNotFound, "Doctor not found")
		return
	case err == slots.ErrDoctorUnavailable:
		// expected business outcome, not a fault
		utils.Fail(w, http.StatusOK, "Doctor is not available")
		return
	case err == slots.ErrSlotTaken:
		utils.Fail(w, http.StatusOK, "Slot is not available")
		return
	case err == slots.ErrInvalidSlot:
		utils.Fail(w, http.StatusBadRequest, "Invalid slot date")
		return
	default:
		log.Printf("slot reserve failed: %v", err)
		utils.Fail(w, http.StatusServiceUnavailable, "Temporary error, please retry")
		return
	}

	var doctor models.Doctor
	if err := db.DoctorCollection.FindOne(ctx, bson.M{"doctorid": input.DocID}).Decode(&doctor); err != nil {
		// reservation went through but the doctor vanished; release and
		// report transient
		releaseQuietly(input.DocID, input.SlotDate, input.SlotTime)
		utils.Fail(w, http.StatusServiceUnavailable, "Temporary error, please retry")
		return
	}

	appt := buildAppointment(user, doctor, input.SlotDate, input.SlotTime)
	if _, err := db.AppointmentCollection.InsertOne(ctx, appt); err != nil {
		log.Printf("appointment insert failed: %v", err)
		releaseQuietly(input.DocID, input.SlotDate, input.SlotTime)
		utils.Fail(w, http.StatusServiceUnavailable, "Temporary error, please retry")
		return
	}

	go mq.Emit(r.Context(), "appointment-booked", models.Index{
		EntityType: "appointment",
		EntityId:   appt.AppointmentID,
		ItemId:     input.DocID,
		ItemType:   "doctor",
	})
	BroadcastSlotUpdate(input.DocID)

	utils.Ok(w, http.StatusCreated, "Appointment has been booked", utils.M{
		"appointmentId": appt.AppointmentID,
	})
}

// List returns the caller's appointments, doctor display fields expanded
// from the stored snapshot.
func List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.AppointmentCollection.Find(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cur.Close(ctx)

	appointments := []models.Appointment{}
	if err := cur.All(ctx, &appointments); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.Ok(w, http.StatusOK, "", utils.M{"appointment": appointments})
}

// Cancel flips the cancelled flag and releases the slot. Slot release is
// best-effort: a doctor deleted since booking does not block cancellation.
func Cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		AppointmentID string `json:"appointmentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.AppointmentID == "" {
		utils.Fail(w, http.StatusBadRequest, "Missing details")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var appt models.Appointment
	err := db.AppointmentCollection.FindOne(ctx, bson.M{"appointmentid": input.AppointmentID}).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		utils.Fail(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := authorizeCancel(appt, userID); err != nil {
		utils.Fail(w, http.StatusForbidden, "Unauthorized action")
		return
	}

	if appt.Cancelled {
		// idempotent: the slot was already released
		utils.Ok(w, http.StatusOK, "Appointment Cancelled", nil)
		return
	}

	res, err := db.AppointmentCollection.UpdateOne(ctx,
		activeCancelFilter(appt.AppointmentID),
		bson.M{"$set": bson.M{"cancelled": true}},
	)
	if err != nil {
		log.Printf("cancel update failed: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.ModifiedCount == 0 {
		// a concurrent cancel won the flip and already released the slot
		utils.Ok(w, http.StatusOK, "Appointment Cancelled", nil)
		return
	}

	if err := Ledger.Release(ctx, appt.DoctorID, appt.SlotDate, appt.SlotTime); err != nil {
		// missing doctor at cancel time is tolerated
		log.Printf("slot release for %s failed: %v", appt.AppointmentID, err)
	}

	go mq.Emit(r.Context(), "appointment-cancelled", models.Index{
		EntityType: "appointment",
		EntityId:   appt.AppointmentID,
		ItemId:     appt.DoctorID,
		ItemType:   "doctor",
	})
	BroadcastSlotUpdate(appt.DoctorID)

	utils.Ok(w, http.StatusOK, "Appointment Cancelled", nil)
}

// Pay marks the appointment's payment completed through the transition
// guard. Gateway integration plugs in behind payments.Provider.
func Pay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		AppointmentID string `json:"appointmentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.AppointmentID == "" {
		utils.Fail(w, http.StatusBadRequest, "Missing details")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := db.AppointmentCollection.FindOne(ctx, bson.M{"appointmentid": input.AppointmentID}).Decode(&appt); err != nil {
		utils.Fail(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if appt.UserID != userID {
		utils.Fail(w, http.StatusForbidden, "Unauthorized action")
		return
	}

	if err := payments.MarkPaid(&appt); err != nil {
		utils.Fail(w, http.StatusOK, err.Error())
		return
	}

	_, err := db.AppointmentCollection.UpdateOne(ctx,
		bson.M{"appointmentid": appt.AppointmentID},
		bson.M{"$set": bson.M{"payment": appt.Payment}},
	)
	if err != nil {
		log.Printf("payment update failed: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.Ok(w, http.StatusOK, "Payment Completed", nil)
}

func releaseQuietly(doctorID, date, slotTime string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Ledger.Release(ctx, doctorID, date, slotTime); err != nil {
		log.Printf("slot rollback for %s %s %s failed: %v", doctorID, date, slotTime, err)
	}
}
