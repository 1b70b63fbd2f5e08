package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"medibook/config"
	"medibook/globals"
	"medibook/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate validates the bearer token and stores the caller identity
// and role on the request context. Claims never touch the request body.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := ClaimsFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			utils.Fail(w, http.StatusUnauthorized, "Not authorized. Please log in again.")
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireRole gates a route on the role claim. Used for the admin and
// doctor surfaces; the token is verified the same way as user tokens.
func RequireRole(role string, next httprouter.Handle) httprouter.Handle {
	return Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		got, _ := r.Context().Value(globals.RoleKey).(string)
		if got != role {
			utils.Fail(w, http.StatusForbidden, "Forbidden")
			return
		}
		next(w, r, ps)
	})
}

// ClaimsFromHeader parses and verifies an "Authorization: Bearer <token>"
// header value.
func ClaimsFromHeader(authHeader string) (*Claims, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fmt.Errorf("invalid token format")
	}
	return ValidateJWT(strings.TrimPrefix(authHeader, "Bearer "))
}

func ValidateJWT(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return config.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	return claims, nil
}
