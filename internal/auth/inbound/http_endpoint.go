package inbound

import (
	"github.com/shandysiswandi/gotp/internal/auth/usecase"
	"github.com/shandysiswandi/gotp/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for registration, login and the TOTP
// enrollment flow.
type HTTPEndpoint struct {
	uc uc
}

// Healthcheck reports that the service is up.
func (h *HTTPEndpoint) Healthcheck(r *router.Request) (any, error) {
	return HealthResponse{
		Status:  "success",
		Message: "Welcome to Two-Factor Authentication with Golang",
	}, nil
}

// Register creates a new account from name, email and password.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		return nil, err
	}

	return RegisterResponse{
		Status:  "success",
		Message: "Registered successfully, please login",
	}, nil
}

// Login checks credentials and returns the account.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		Status: "success",
		User:   newUserPayload(resp.User),
	}, nil
}

// OTPGenerate creates a fresh TOTP secret and provisioning URI for a user.
func (h *HTTPEndpoint) OTPGenerate(r *router.Request) (any, error) {
	var req OTPGenerateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPGenerate(r.Context(), usecase.OTPGenerateInput{UserID: req.UserID})
	if err != nil {
		return nil, err
	}

	return OTPGenerateResponse{
		Base32:  resp.Base32,
		AuthURL: resp.AuthURL,
	}, nil
}

// OTPVerify confirms enrollment with a first valid code and enables OTP.
func (h *HTTPEndpoint) OTPVerify(r *router.Request) (any, error) {
	var req OTPVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPVerify(r.Context(), usecase.OTPVerifyInput{
		UserID: req.UserID,
		Token:  req.Token,
	})
	if err != nil {
		return nil, err
	}

	return OTPVerifyResponse{
		OTPVerified: true,
		User:        newUserPayload(resp.User),
	}, nil
}

// OTPValidate checks a code during login for an already verified user.
func (h *HTTPEndpoint) OTPValidate(r *router.Request) (any, error) {
	var req OTPValidateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.OTPValidate(r.Context(), usecase.OTPValidateInput{
		UserID: req.UserID,
		Token:  req.Token,
	}); err != nil {
		return nil, err
	}

	return OTPValidateResponse{OTPValid: true}, nil
}

// OTPDisable turns off the OTP requirement without dropping the enrollment.
func (h *HTTPEndpoint) OTPDisable(r *router.Request) (any, error) {
	var req OTPDisableRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPDisable(r.Context(), usecase.OTPDisableInput{UserID: req.UserID})
	if err != nil {
		return nil, err
	}

	return OTPDisableResponse{
		OTPDisabled: true,
		User:        newUserPayload(resp.User),
	}, nil
}
