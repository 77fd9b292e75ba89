package inbound

import (
	"time"

	"github.com/comfinserv/taxdesk/internal/identity/entity"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UseOTP   bool   `json:"useOTP"`
}

type RegisterResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func (RegisterResponse) Message() string {
	return "Registration successful"
}

type RequestOTPRequest struct {
	Email string `json:"email"`
}

type RequestOTPResponse struct{}

func (RequestOTPResponse) Message() string {
	return "If an account with that email exists, we have sent an OTP."
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyOTPResponse struct {
	TempToken string       `json:"tempToken"`
	User      UserResponse `json:"user"`
}

type ToggleOTPRequest struct {
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

type ResetPasswordResponse struct{}

func (ResetPasswordResponse) Message() string {
	return "Password has been reset"
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordResponse struct{}

func (ChangePasswordResponse) Message() string {
	return "Password has been changed"
}

type UpdateProfileRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	PAN    string `json:"pan"`
	Mobile string `json:"mobile"`
}

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	UseOTP    bool      `json:"useOTP"`
	PAN       string    `json:"pan,omitempty"`
	Mobile    string    `json:"mobile,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(user entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.FullName,
		Role:      user.Role.String(),
		UseOTP:    user.UseOTP,
		PAN:       user.PAN,
		Mobile:    user.Mobile,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
