package models

import "time"

// Payment status values for an appointment.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Appointment is immutable after creation except for the three status
// fields (cancelled, isCompleted, payment). UserData and DocData are
// denormalized snapshots taken at booking time and never refreshed.
type Appointment struct {
	AppointmentID string              `json:"appointmentid" bson:"appointmentid"`
	UserID        string              `json:"userid" bson:"userid"`
	DoctorID      string              `json:"doctorid" bson:"doctorid"`
	SlotDate      string              `json:"slotDate" bson:"slotDate"`
	SlotTime      string              `json:"slotTime" bson:"slotTime"`
	UserData      UserProfileResponse `json:"userData" bson:"userData"`
	DocData       DoctorRef           `json:"docData" bson:"docData"`
	Amount        float64             `json:"amount" bson:"amount"`
	BookedAt      time.Time           `json:"date" bson:"date"`
	Cancelled     bool                `json:"cancelled" bson:"cancelled"`
	IsCompleted   bool                `json:"isCompleted" bson:"isCompleted"`
	Payment       string              `json:"payment" bson:"payment"`
}

// Index represents an event message published to the broker.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}
