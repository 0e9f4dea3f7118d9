package event

const OTPEnabledDestination string = "auth.otp.enabled"
const OTPDisabledDestination string = "auth.otp.disabled"

type OTPEnabledMessage struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type OTPDisabledMessage struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
