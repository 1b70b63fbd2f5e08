package auth

import (
	"testing"

	"medibook/config"
	"medibook/middleware"
)

func TestValidationMessages(t *testing.T) {
	cases := []struct {
		name  string
		input registerInput
		want  string
	}{
		{"short password", registerInput{Name: "A", Email: "a@b.com", Password: "short"}, "Password must be at least 8 characters"},
		{"bad email", registerInput{Name: "A", Email: "not-an-email", Password: "longenough"}, "Enter a valid email"},
		{"missing name", registerInput{Email: "a@b.com", Password: "longenough"}, "Missing details"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(tc.input)
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if got := validationMessage(err); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidationAccepts(t *testing.T) {
	in := registerInput{Name: "Asha", Email: "asha@example.com", Password: "longenough"}
	if err := validate.Struct(in); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
}

func TestIssueTokenCarriesRole(t *testing.T) {
	config.JwtSecret = []byte("test-secret")

	token, err := IssueToken("d456", "doctor")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := middleware.ValidateJWT(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "d456" || claims.Role != "doctor" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}
