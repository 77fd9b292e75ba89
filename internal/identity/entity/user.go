package entity

import "time"

type User struct {
	ID        int64
	Email     string
	FullName  string
	Role      Role
	UseOTP    bool
	PAN       string
	Mobile    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserAuth is the login projection of a user. Exactly one credential side is
// authoritative: Password when UseOTP is false, the OTP pair when it is true.
// OTPCode holds the HMAC of the issued code, never the plaintext.
type UserAuth struct {
	ID           int64
	Email        string
	FullName     string
	Role         Role
	UseOTP       bool
	Password     *string
	OTPCode      *string
	OTPExpiresAt *time.Time
}

type NewUser struct {
	ID       int64
	Email    string
	FullName string
	Role     Role
	UseOTP   bool
	Password *string
}

type UpdateProfile struct {
	ID       int64
	Email    string
	FullName string
	PAN      string
	Mobile   string
}
