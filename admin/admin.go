package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"medibook/auth"
	"medibook/config"
	"medibook/db"
	"medibook/models"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin seeds the admins collection from ADMIN_EMAIL/ADMIN_PASSWORD
// so admin auth runs through an identity record and issued tokens, not a
// shared-secret comparison per request.
func EnsureAdmin(ctx context.Context) error {
	if config.AdminEmail == "" || config.AdminPassword == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set; skipping admin seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.AdminCollection.UpdateOne(ctx,
		bson.M{"email": config.AdminEmail},
		bson.M{
			"$set": bson.M{"password": string(hashed)},
			"$setOnInsert": bson.M{
				"adminid":    "a" + utils.GenerateRandomString(10),
				"created_at": time.Now(),
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// Login authenticates an admin record and issues a role-"admin" token
// verified by the same middleware as user tokens.
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

	var stored models.Admin
	if err := db.AdminCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&stored); err != nil {
		utils.Fail(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(input.Password)); err != nil {
		utils.Fail(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}

	token, err := auth.IssueToken(stored.AdminID, "admin")
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.Ok(w, http.StatusOK, "Login successful", utils.M{"token": token})
}

// AddDoctor creates a doctor record from a multipart form with an image.
func AddDoctor(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")
	speciality := r.FormValue("speciality")
	degree := r.FormValue("degree")
	experience := r.FormValue("experience")
	about := r.FormValue("about")
	feesRaw := r.FormValue("fees")
	addressRaw := r.FormValue("address")

	if name == "" || email == "" || password == "" || speciality == "" ||
		degree == "" || experience == "" || about == "" || feesRaw == "" || addressRaw == "" {
		utils.Fail(w, http.StatusBadRequest, "Missing details")
		return
	}
	if len(password) < 8 {
		utils.Fail(w, http.StatusBadRequest, "Please enter a strong password")
		return
	}

	fees, err := strconv.ParseFloat(feesRaw, 64)
	if err != nil || fees < 0 {
		utils.Fail(w, http.StatusBadRequest, "Invalid fees")
		return
	}

	var address models.Address
	if err := json.Unmarshal([]byte(addressRaw), &address); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid address")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err = db.DoctorCollection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		utils.Fail(w, http.StatusConflict, "Email already registered")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}

	imageURL, err := uploadDoctorImage(ctx, r)
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}

	doctor := models.Doctor{
		DoctorID:   "d" + utils.GenerateRandomString(10),
		Name:       name,
		Email:      email,
		Password:   string(hashed),
		Image:      imageURL,
		Speciality: speciality,
		Degree:     degree,
		Experience: experience,
		About:      about,
		Fees:       fees,
		Address:    address,
		Available:  true,
		SlotBooked: map[string][]string{},
		CreatedAt:  time.Now(),
	}

	if _, err := db.DoctorCollection.InsertOne(ctx, doctor); err != nil {
		log.Printf("add doctor insert failed: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Failed to add doctor")
		return
	}

	utils.Ok(w, http.StatusCreated, "Doctor Added", utils.M{"doctor": doctor.Public()})
}

// AllDoctors returns every doctor minus the credential for the admin panel.
func AllDoctors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.DoctorCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch doctors")
		return
	}
	defer cur.Close(ctx)

	type adminDoctor struct {
		models.DoctorPublic `bson:",inline"`
		Email               string `json:"email" bson:"email"`
	}

	doctors := []adminDoctor{}
	for cur.Next(ctx) {
		var d models.Doctor
		if err := cur.Decode(&d); err != nil {
			continue
		}
		doctors = append(doctors, adminDoctor{DoctorPublic: d.Public(), Email: d.Email})
	}

	utils.Ok(w, http.StatusOK, "", utils.M{"doctors": doctors})
}

// AllAppointments lists every appointment with the stored user and doctor
// snapshots already expanded.
func AllAppointments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.AppointmentCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}
	defer cur.Close(ctx)

	appointments := []models.Appointment{}
	if err := cur.All(ctx, &appointments); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Error processing appointments")
		return
	}

	utils.Ok(w, http.StatusOK, "", utils.M{"appointment": appointments})
}

// DashboardStats counts users and appointments.
func DashboardStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	totalUsers, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	totalAppointments, err := db.AppointmentCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.Ok(w, http.StatusOK, "", utils.M{
		"totalUsers":        totalUsers,
		"totalAppointments": totalAppointments,
	})
}
