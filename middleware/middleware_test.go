package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook/config"
	"medibook/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, secret []byte, userID, role string) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestValidateJWTRoundTrip(t *testing.T) {
	config.JwtSecret = []byte("test-secret")

	token := signToken(t, config.JwtSecret, "u123", "user")
	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "u123" || claims.Role != "user" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	config.JwtSecret = []byte("test-secret")

	token := signToken(t, []byte("other-secret"), "u123", "user")
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("expected verification failure")
	}
}

func TestValidateJWTEmpty(t *testing.T) {
	if _, err := ValidateJWT(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestAuthenticateSetsContext(t *testing.T) {
	config.JwtSecret = []byte("test-secret")

	var gotID, gotRole string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/user/get-profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, config.JwtSecret, "u123", "user"))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "u123" || gotRole != "user" {
		t.Fatalf("context values: id=%q role=%q", gotID, gotRole)
	}
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/user/get-profile", nil)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	assertFailureEnvelope(t, rec)
}

// every rejection carries the same structured envelope as handler
// responses, never a plain-text body
func assertFailureEnvelope(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v (%q)", err, rec.Body.String())
	}
	if body["success"] != false {
		t.Fatalf("expected success=false envelope, got %v", body)
	}
	if msg, _ := body["message"].(string); msg == "" {
		t.Fatalf("expected a message in the envelope, got %v", body)
	}
}

func TestRequireRole(t *testing.T) {
	config.JwtSecret = []byte("test-secret")

	called := false
	handler := RequireRole("admin", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/all-doctors", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, config.JwtSecret, "u123", "user"))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusForbidden || called {
		t.Fatalf("user token must not pass admin gate, code=%d called=%v", rec.Code, called)
	}
	assertFailureEnvelope(t, rec)

	req = httptest.NewRequest(http.MethodGet, "/admin/all-doctors", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, config.JwtSecret, "a123", "admin"))
	rec = httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusOK || !called {
		t.Fatalf("admin token must pass, code=%d called=%v", rec.Code, called)
	}
}
