package models

import "time"

// Doctor owns its slot ledger exclusively: slot_booked maps a calendar-date
// string to the time strings already reserved on that date. Dates and times
// are opaque strings compared by exact equality; no calendar parsing or
// timezone normalization happens anywhere in the system.
type Doctor struct {
	DoctorID   string              `json:"doctorid" bson:"doctorid"`
	Name       string              `json:"name" bson:"name"`
	Email      string              `json:"email" bson:"email"`
	Password   string              `json:"-" bson:"password"`
	Image      string              `json:"image" bson:"image"`
	Speciality string              `json:"speciality" bson:"speciality"`
	Degree     string              `json:"degree" bson:"degree"`
	Experience string              `json:"experience" bson:"experience"`
	About      string              `json:"about" bson:"about"`
	Fees       float64             `json:"fees" bson:"fees"`
	Address    Address             `json:"address" bson:"address"`
	Available  bool                `json:"available" bson:"available"`
	SlotBooked map[string][]string `json:"slot_booked" bson:"slot_booked"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
}

// DoctorPublic is the patient-facing listing shape: no password, no email.
type DoctorPublic struct {
	DoctorID   string              `json:"doctorid" bson:"doctorid"`
	Name       string              `json:"name" bson:"name"`
	Image      string              `json:"image" bson:"image"`
	Speciality string              `json:"speciality" bson:"speciality"`
	Degree     string              `json:"degree" bson:"degree"`
	Experience string              `json:"experience" bson:"experience"`
	About      string              `json:"about" bson:"about"`
	Fees       float64             `json:"fees" bson:"fees"`
	Address    Address             `json:"address" bson:"address"`
	Available  bool                `json:"available" bson:"available"`
	SlotBooked map[string][]string `json:"slot_booked" bson:"slot_booked"`
}

// Public strips credential and email from a Doctor.
func (d Doctor) Public() DoctorPublic {
	return DoctorPublic{
		DoctorID:   d.DoctorID,
		Name:       d.Name,
		Image:      d.Image,
		Speciality: d.Speciality,
		Degree:     d.Degree,
		Experience: d.Experience,
		About:      d.About,
		Fees:       d.Fees,
		Address:    d.Address,
		Available:  d.Available,
		SlotBooked: d.SlotBooked,
	}
}

// DoctorRef is the read-side join shape expanded onto appointment listings.
type DoctorRef struct {
	DoctorID   string  `json:"doctorid" bson:"doctorid"`
	Name       string  `json:"name" bson:"name"`
	Image      string  `json:"image" bson:"image"`
	Speciality string  `json:"speciality" bson:"speciality"`
	Address    Address `json:"address" bson:"address"`
}
