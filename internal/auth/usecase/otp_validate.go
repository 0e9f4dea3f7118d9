package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
)

type OTPValidateInput struct {
	UserID string `validate:"required,len=24,hexadecimal"`
	Token  string `validate:"required,numeric,len=6"`
}

func (s *Usecase) OTPValidate(ctx context.Context, in OTPValidateInput) error {
	ctx, span := s.startSpan(ctx, "OTPValidate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewBusiness(msgTokenInvalid, goerror.CodeInvalidInput)
	}

	if err := s.throttle(ctx, s.otpLimiter, "otp:"+in.UserID); err != nil {
		return err
	}

	user, err := s.repoDB.GetUserByID(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp validate for unknown user", "user_id", in.UserID)
		return goerror.NewBusiness(msgTokenInvalid, goerror.CodeInvalidInput)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if !user.OTPVerified {
		slog.WarnContext(ctx, "otp validate before verification", "user_id", in.UserID)
		return goerror.NewBusiness("OTP must be verified first", goerror.CodeUnauthorized)
	}

	if user.OTPBase32 == "" || !s.totp.Validate(in.Token, user.OTPBase32, s.clock.Now(), validateSkew) {
		slog.WarnContext(ctx, "otp validate code mismatch", "user_id", in.UserID)
		return goerror.NewBusiness(msgTokenInvalid, goerror.CodeInvalidInput)
	}

	return nil
}
