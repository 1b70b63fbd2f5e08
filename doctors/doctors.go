package doctors

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"medibook/auth"
	"medibook/db"
	"medibook/globals"
	"medibook/models"
	"medibook/payments"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Login verifies a doctor's credentials and issues a doctor-role token.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" || input.Password == "" {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var doc models.Doctor
	if err := db.DoctorCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&doc); err != nil {
		utils.Fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(doc.Password), []byte(input.Password)); err != nil {
		utils.Fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(doc.DoctorID, "doctor")
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.Ok(w, http.StatusOK, "", utils.M{"token": token})
}

// List returns all doctors with password and email stripped.
func List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.DoctorCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cur.Close(ctx)

	doctors := []models.DoctorPublic{}
	for cur.Next(ctx) {
		var d models.Doctor
		if err := cur.Decode(&d); err != nil {
			continue
		}
		doctors = append(doctors, d.Public())
	}

	utils.Ok(w, http.StatusOK, "", utils.M{"doctors": doctors})
}

// ChangeAvailability flips a doctor's availability flag. A doctor toggles
// only themselves; an admin may name any doctor via docId.
func ChangeAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doctorID := utils.GetUserIDFromRequest(r)

	role, _ := r.Context().Value(globals.RoleKey).(string)
	if role == "admin" {
		var input struct {
			DocID string `json:"docId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.DocID == "" {
			utils.Fail(w, http.StatusBadRequest, "Invalid input")
			return
		}
		doctorID = input.DocID
	} else if role != "doctor" {
		utils.Fail(w, http.StatusForbidden, "Unauthorized action")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var doc models.Doctor
	if err := db.DoctorCollection.FindOne(ctx, bson.M{"doctorid": doctorID}).Decode(&doc); err != nil {
		utils.Fail(w, http.StatusNotFound, "Doctor not found")
		return
	}

	_, err := db.DoctorCollection.UpdateOne(ctx,
		bson.M{"doctorid": doctorID},
		bson.M{"$set": bson.M{"available": !doc.Available}},
	)
	if err != nil {
		log.Printf("availability toggle failed: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.Ok(w, http.StatusOK, "Availability Changed", utils.M{"available": !doc.Available})
}

// CompleteAppointment lets the treating doctor flip isCompleted on a paid
// appointment.
func CompleteAppointment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doctorID := utils.GetUserIDFromRequest(r)

	var input struct {
		AppointmentID string `json:"appointmentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.AppointmentID == "" {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := db.AppointmentCollection.FindOne(ctx, bson.M{"appointmentid": input.AppointmentID}).Decode(&appt); err != nil {
		utils.Fail(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if appt.DoctorID != doctorID {
		utils.Fail(w, http.StatusForbidden, "Unauthorized action")
		return
	}

	if err := payments.MarkCompleted(&appt); err != nil {
		utils.Fail(w, http.StatusOK, err.Error())
		return
	}

	_, err := db.AppointmentCollection.UpdateOne(ctx,
		bson.M{"appointmentid": appt.AppointmentID},
		bson.M{"$set": bson.M{"isCompleted": true}},
	)
	if err != nil {
		log.Printf("complete appointment failed: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.Ok(w, http.StatusOK, "Appointment Completed", nil)
}
