package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"medibook/db"
	"medibook/media"
	"medibook/models"
	"medibook/mq"
	"medibook/rdx"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetProfile returns the caller's profile sans credential.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.Fail(w, http.StatusNotFound, "User not found")
		return
	}

	utils.Ok(w, http.StatusOK, "", utils.M{"userData": user.Profile()})
}

// UpdateProfile applies field changes from a multipart form and optionally
// replaces the profile image through the media store.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	name := r.FormValue("name")
	phone := r.FormValue("phone")
	dob := r.FormValue("dob")
	gender := r.FormValue("gender")
	if name == "" || phone == "" || dob == "" || gender == "" {
		utils.Fail(w, http.StatusBadRequest, "Data Missing")
		return
	}

	updates := bson.M{
		"name":       name,
		"phone":      phone,
		"dob":        dob,
		"gender":     gender,
		"updated_at": time.Now(),
	}

	// address arrives as a JSON string field on the form
	if raw := r.FormValue("address"); raw != "" {
		var addr models.Address
		if err := json.Unmarshal([]byte(raw), &addr); err != nil {
			utils.Fail(w, http.StatusBadRequest, "Invalid address")
			return
		}
		updates["address"] = addr
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if !utils.ValidImageFileType(header) {
			utils.Fail(w, http.StatusBadRequest, "Invalid file type. Supported formats: JPEG, PNG, WebP, GIF.")
			return
		}
		imageURL, err := media.Upload(ctx, file, header, "userpic")
		if err != nil {
			log.Printf("profile image upload failed: %v", err)
			utils.Fail(w, http.StatusInternalServerError, "Image upload failed")
			return
		}
		updates["image"] = imageURL
	}

	res, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": updates})
	if err != nil {
		log.Printf("profile update failed: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if res.MatchedCount == 0 {
		utils.Fail(w, http.StatusNotFound, "User not found")
		return
	}

	if err := rdx.RdxSet(fmt.Sprintf("users:%s", userID), name); err != nil {
		log.Printf("Failed to cache username: %v", err)
	}

	go mq.Emit(r.Context(), "profile-edited", models.Index{
		EntityType: "user",
		EntityId:   userID,
	})

	utils.Ok(w, http.StatusOK, "Profile Updated", nil)
}
