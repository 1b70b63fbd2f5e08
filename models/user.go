package models

import "time"

// Address mirrors the two free-form lines the frontend sends as a JSON
// string on multipart forms.
type Address struct {
	Line1 string `json:"line1" bson:"line1"`
	Line2 string `json:"line2,omitempty" bson:"line2,omitempty"`
}

type User struct {
	UserID    string    `json:"userid" bson:"userid"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	Image     string    `json:"image" bson:"image"`
	Address   Address   `json:"address" bson:"address"`
	Gender    string    `json:"gender" bson:"gender"`
	DOB       string    `json:"dob" bson:"dob"`
	Phone     string    `json:"phone" bson:"phone"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// UserProfileResponse is the password-free shape returned by profile reads
// and embedded in appointment snapshots.
type UserProfileResponse struct {
	UserID  string  `json:"userid" bson:"userid"`
	Name    string  `json:"name" bson:"name"`
	Email   string  `json:"email" bson:"email"`
	Image   string  `json:"image" bson:"image"`
	Address Address `json:"address" bson:"address"`
	Gender  string  `json:"gender" bson:"gender"`
	DOB     string  `json:"dob" bson:"dob"`
	Phone   string  `json:"phone" bson:"phone"`
}

// Profile strips the credential from a User.
func (u User) Profile() UserProfileResponse {
	return UserProfileResponse{
		UserID:  u.UserID,
		Name:    u.Name,
		Email:   u.Email,
		Image:   u.Image,
		Address: u.Address,
		Gender:  u.Gender,
		DOB:     u.DOB,
		Phone:   u.Phone,
	}
}

type Admin struct {
	AdminID   string    `json:"adminid" bson:"adminid"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
