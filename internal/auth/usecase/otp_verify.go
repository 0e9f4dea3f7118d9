package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotp/internal/auth/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
)

// msgTokenInvalid is shared by every failure path of Verify and Validate so
// responses never reveal whether an account exists.
const msgTokenInvalid = "Token is invalid or user doesn't exist"

type OTPVerifyInput struct {
	UserID string `validate:"required,len=24,hexadecimal"`
	Token  string `validate:"required,numeric,len=6"`
}

type OTPVerifyOutput struct {
	User entity.User
}

func (s *Usecase) OTPVerify(ctx context.Context, in OTPVerifyInput) (*OTPVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewBusiness(msgTokenInvalid, goerror.CodeInvalidInput)
	}

	if err := s.throttle(ctx, s.otpLimiter, "otp:"+in.UserID); err != nil {
		return nil, err
	}

	user, err := s.repoDB.GetUserByID(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp verify for unknown user", "user_id", in.UserID)
		return nil, goerror.NewBusiness(msgTokenInvalid, goerror.CodeInvalidInput)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if user.OTPBase32 == "" || !s.totp.Validate(in.Token, user.OTPBase32, s.clock.Now(), verifySkew) {
		slog.WarnContext(ctx, "otp verify code mismatch", "user_id", in.UserID)
		return nil, goerror.NewBusiness(msgTokenInvalid, goerror.CodeInvalidInput)
	}

	updated, err := s.repoDB.EnableOTP(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "user vanished during otp verify", "user_id", in.UserID)
			return nil, goerror.NewBusiness("No user with this id exists", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo enable otp", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publishAsync(ctx, func(ctx context.Context) error {
		if err := s.repoMessaging.PublishOTPEnabled(ctx, OTPEnabledEvent{
			UserID: in.UserID,
			Email:  updated.Email,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish otp enabled", "user_id", in.UserID, "error", err)
		}
		return nil
	})

	return &OTPVerifyOutput{User: *updated}, nil
}
