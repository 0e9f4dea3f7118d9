package inbound

import (
	"context"

	"github.com/shandysiswandi/gotp/internal/auth/usecase"
	"github.com/shandysiswandi/gotp/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) error
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)

	OTPGenerate(ctx context.Context, in usecase.OTPGenerateInput) (*usecase.OTPGenerateOutput, error)
	OTPVerify(ctx context.Context, in usecase.OTPVerifyInput) (*usecase.OTPVerifyOutput, error)
	OTPValidate(ctx context.Context, in usecase.OTPValidateInput) error
	OTPDisable(ctx context.Context, in usecase.OTPDisableInput) (*usecase.OTPDisableOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/healthchecker", end.Healthcheck)

	// Account lifecycle
	r.POST("/api/auth/register", end.Register)
	r.POST("/api/auth/login", end.Login)

	// Two-factor enrollment and validation
	r.POST("/api/auth/otp/generate", end.OTPGenerate)
	r.POST("/api/auth/otp/verify", end.OTPVerify)
	r.POST("/api/auth/otp/validate", end.OTPValidate)
	r.POST("/api/auth/otp/disable", end.OTPDisable)
}
