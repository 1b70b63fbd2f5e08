package utils

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
)

func TestGenerateRandomDigitString(t *testing.T) {
	s := GenerateRandomDigitString(22)
	if len(s) != 22 {
		t.Fatalf("expected length 22, got %d", len(s))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit rune %q in %q", r, s)
		}
	}
}

func TestValidImageFileType(t *testing.T) {
	header := func(ct string) *multipart.FileHeader {
		return &multipart.FileHeader{Header: textproto.MIMEHeader{"Content-Type": {ct}}}
	}

	if !ValidImageFileType(header("image/png")) {
		t.Fatal("png must be accepted")
	}
	if !ValidImageFileType(header("image/jpeg")) {
		t.Fatal("jpeg must be accepted")
	}
	if ValidImageFileType(header("application/pdf")) {
		t.Fatal("pdf must be rejected")
	}
	if ValidImageFileType(header("")) {
		t.Fatal("missing content type must be rejected")
	}
}

func TestEnvelopes(t *testing.T) {
	rec := httptest.NewRecorder()
	Ok(rec, http.StatusCreated, "Appointment Booked", M{"appointmentId": "123"})

	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusCreated || got["success"] != true {
		t.Fatalf("success envelope: code=%d body=%v", rec.Code, got)
	}
	if got["message"] != "Appointment Booked" || got["appointmentId"] != "123" {
		t.Fatalf("payload merge: %v", got)
	}

	rec = httptest.NewRecorder()
	Fail(rec, http.StatusOK, "Slot is not available")

	got = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["success"] != false || got["message"] != "Slot is not available" {
		t.Fatalf("failure envelope: %v", got)
	}
}
