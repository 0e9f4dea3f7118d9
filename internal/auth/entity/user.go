package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a registered account stored in the users collection.
//
// OTPBase32 and OTPAuthURL are always written together; OTPEnabled can only
// be true once OTPVerified has been set. UpdatedAt reflects profile writes,
// not OTP state changes.
type User struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Name        string        `bson:"name"`
	Email       string        `bson:"email"`
	Password    string        `bson:"password"`
	OTPEnabled  bool          `bson:"otp_enabled"`
	OTPVerified bool          `bson:"otp_verified"`
	OTPBase32   string        `bson:"otp_base32"`
	OTPAuthURL  string        `bson:"otp_auth_url"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
