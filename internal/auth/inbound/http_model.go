package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/gotp/internal/auth/entity"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (RegisterResponse) StatusCode() int { return http.StatusCreated }

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status string      `json:"status"`
	User   UserPayload `json:"user"`
}

type OTPGenerateRequest struct {
	UserID string `json:"user_id"`
}

type OTPGenerateResponse struct {
	Base32  string `json:"base32"`
	AuthURL string `json:"otpauth_url"`
}

type OTPVerifyRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type OTPVerifyResponse struct {
	OTPVerified bool        `json:"otp_verified"`
	User        UserPayload `json:"user"`
}

type OTPValidateRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type OTPValidateResponse struct {
	OTPValid bool `json:"otp_valid"`
}

type OTPDisableRequest struct {
	UserID string `json:"user_id"`
}

type OTPDisableResponse struct {
	OTPDisabled bool        `json:"otp_disabled"`
	User        UserPayload `json:"user"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UserPayload is the public shape of a user. The password hash never leaves
// the service.
type UserPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	OTPEnabled  bool      `json:"otp_enabled"`
	OTPVerified bool      `json:"otp_verified"`
	OTPBase32   string    `json:"otp_base32"`
	OTPAuthURL  string    `json:"otp_auth_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newUserPayload(u entity.User) UserPayload {
	return UserPayload{
		ID:          u.ID.Hex(),
		Name:        u.Name,
		Email:       u.Email,
		OTPEnabled:  u.OTPEnabled,
		OTPVerified: u.OTPVerified,
		OTPBase32:   u.OTPBase32,
		OTPAuthURL:  u.OTPAuthURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
