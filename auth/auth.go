package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"medibook/config"
	"medibook/db"
	"medibook/middleware"
	"medibook/models"
	"medibook/rdx"
	"medibook/utils"

	"github.com/go-playground/validator"
	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour // 7 days

var validate = validator.New()

type registerInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a user account and returns a usable token.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input registerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(input); err != nil {
		utils.Fail(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Check if the email is already registered
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		utils.Fail(w, http.StatusConflict, "Email already registered")
		return
	} else if err != mongo.ErrNoDocuments {
		log.Printf("register: db error: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("register: bcrypt error: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}

	now := time.Now()
	user := models.User{
		UserID:    "u" + utils.GenerateRandomString(10),
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashedPassword),
		Gender:    "Not Selected",
		DOB:       "Not Selected",
		Phone:     "000000000",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		log.Printf("register: insert error: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	if err := rdx.RdxSet(fmt.Sprintf("users:%s", user.UserID), user.Name); err != nil {
		log.Printf("Failed to cache username: %v", err)
	}

	token, err := IssueToken(user.UserID, "user")
	if err != nil {
		log.Printf("register: token error: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.Ok(w, http.StatusCreated, "User registered successfully", utils.M{"token": token})
}

// Login verifies credentials and returns a token.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(input); err != nil {
		utils.Fail(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var storedUser models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&storedUser)
	if err != nil {
		utils.Fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		utils.Fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := IssueToken(storedUser.UserID, "user")
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := rdx.RdxHset("tokki", storedUser.UserID, token); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.Ok(w, http.StatusOK, "Login successful", utils.M{"token": token})
}

// Logout drops the cached token for the caller.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	if _, err := rdx.RdxHdel("tokki", userID); err != nil {
		log.Printf("Error removing token from Redis: %v", err)
	}

	utils.Ok(w, http.StatusOK, "Logged out", nil)
}

// IssueToken signs a bearer token whose subject is the given identity.
func IssueToken(subjectID, role string) (string, error) {
	claims := &middleware.Claims{
		UserID: subjectID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JwtSecret)
}

// validationMessage maps the first struct validation failure to the
// human-readable messages the frontend shows.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid input"
	}
	fe := errs[0]
	switch {
	case fe.Field() == "Password" && fe.Tag() == "min":
		return "Password must be at least 8 characters"
	case fe.Field() == "Email" && fe.Tag() == "email":
		return "Enter a valid email"
	default:
		return "Missing details"
	}
}
