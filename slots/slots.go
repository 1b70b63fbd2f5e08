// Package slots tracks which (date, time) pairs of a doctor's schedule are
// reserved and enforces the no-double-booking invariant.
//
// Dates and times are opaque strings compared by exact equality. Two
// different spellings of the same instant are different slots; that is a
// documented property of the data model, not something this package tries
// to repair.
package slots

import (
	"context"
	"errors"
	"strings"
	"time"

	"medibook/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrSlotTaken is an expected business outcome, not a fault.
	ErrSlotTaken = errors.New("slot is not available")

	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrDoctorUnavailable = errors.New("doctor is not available")

	// ErrInvalidSlot marks a date string the store cannot hold as a map
	// key; callers report it as malformed input.
	ErrInvalidSlot = errors.New("invalid slot date")
)

// validSlotDate rejects date strings that cannot be a slot_booked map key:
// the store reads "." in a field path as nesting and a leading "$" as an
// operator, so splicing such a date into an update would turn the map
// entry into nested documents and corrupt the doctor record.
func validSlotDate(date string) bool {
	if date == "" || strings.ContainsAny(date, ".\x00") {
		return false
	}
	return date[0] != '$'
}

// Admit decides admission of (date, time) against a slot map and returns
// the updated map. The map is mutated in place; a nil map is allocated.
// Absent date key: admit with a new singleton collection. Present with the
// time not yet a member: admit and append. Already a member: reject.
func Admit(slotMap map[string][]string, date, slotTime string) (map[string][]string, error) {
	if slotMap == nil {
		slotMap = make(map[string][]string)
	}
	for _, t := range slotMap[date] {
		if t == slotTime {
			return slotMap, ErrSlotTaken
		}
	}
	slotMap[date] = append(slotMap[date], slotTime)
	return slotMap, nil
}

// Release removes the exact time string from the date's collection,
// leaving every other entry untouched. Empty collections are retained.
func Release(slotMap map[string][]string, date, slotTime string) {
	times, ok := slotMap[date]
	if !ok {
		return
	}
	kept := make([]string, 0, len(times))
	for _, t := range times {
		if t != slotTime {
			kept = append(kept, t)
		}
	}
	slotMap[date] = kept
}

// Ledger is the admission/release contract the appointment lifecycle
// depends on. Reserve returns ErrSlotTaken, ErrDoctorNotFound,
// ErrDoctorUnavailable, or ErrInvalidSlot as business outcomes; any other
// error is a transient infrastructure fault, safe to retry.
type Ledger interface {
	Reserve(ctx context.Context, doctorID, date, slotTime string) error
	Release(ctx context.Context, doctorID, date, slotTime string) error
}

// MongoLedger reserves slots with a single conditional update against the
// doctor document, so N concurrent reserves for the same triple modify
// exactly one document in exactly one request. No read-modify-write.
type MongoLedger struct {
	Timeout time.Duration
}

func NewMongoLedger() *MongoLedger {
	return &MongoLedger{Timeout: 5 * time.Second}
}

func (l *MongoLedger) Reserve(ctx context.Context, doctorID, date, slotTime string) error {
	if !validSlotDate(date) {
		return ErrInvalidSlot
	}

	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	field := "slot_booked." + date
	// $ne also matches documents where the date key is absent, so the
	// first reservation of a date creates the collection via $push.
	filter := bson.M{
		"doctorid":  doctorID,
		"available": true,
		field:       bson.M{"$ne": slotTime},
	}
	update := bson.M{"$push": bson.M{field: slotTime}}

	res, err := db.DoctorCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 1 {
		return nil
	}

	// The conditional update did not admit; look at the doctor once to
	// report why. The inspection is advisory only, admission already
	// happened (or not) atomically above.
	var doc struct {
		Available bool `bson:"available"`
	}
	err = db.DoctorCollection.FindOne(ctx, bson.M{"doctorid": doctorID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return ErrDoctorNotFound
	}
	if err != nil {
		return err
	}
	if !doc.Available {
		return ErrDoctorUnavailable
	}
	return ErrSlotTaken
}

func (l *MongoLedger) Release(ctx context.Context, doctorID, date, slotTime string) error {
	if !validSlotDate(date) {
		return ErrInvalidSlot
	}

	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	field := "slot_booked." + date
	res, err := db.DoctorCollection.UpdateOne(ctx,
		bson.M{"doctorid": doctorID},
		bson.M{"$pull": bson.M{field: slotTime}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrDoctorNotFound
	}
	return nil
}
