package appointments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medibook/config"
	"medibook/db"
	"medibook/models"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// ReceiptQRPayload returns "appointmentID|doctorID|date|time|signature",
// signed with the token secret so the front desk can verify it offline.
func ReceiptQRPayload(appt models.Appointment) string {
	data := fmt.Sprintf("%s|%s|%s|%s", appt.AppointmentID, appt.DoctorID, appt.SlotDate, appt.SlotTime)

	h := hmac.New(sha256.New, config.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyReceiptQRPayload checks the signature on a scanned payload.
func VerifyReceiptQRPayload(payload string) bool {
	idx := strings.LastIndex(payload, "|")
	if idx <= 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, config.JwtSecret)
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(sig), []byte(want))
}

// Receipt renders an owner-only PDF receipt with a signed QR code.
func Receipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	appointmentID := ps.ByName("appointmentId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := db.AppointmentCollection.FindOne(ctx, bson.M{"appointmentid": appointmentID}).Decode(&appt); err != nil {
		utils.Fail(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if appt.UserID != userID {
		utils.Fail(w, http.StatusForbidden, "Unauthorized action")
		return
	}

	qrPNG, err := qrcode.Encode(ReceiptQRPayload(appt), qrcode.Medium, 256)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Appointment Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Patient: %s", appt.UserData.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Doctor: %s (%s)", appt.DocData.Name, appt.DocData.Speciality))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Slot: %s %s", appt.SlotDate, appt.SlotTime))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Amount: %.2f", appt.Amount))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Payment: %s", appt.Payment))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+appt.AppointmentID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
