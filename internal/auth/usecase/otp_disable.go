package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotp/internal/auth/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
)

type OTPDisableInput struct {
	UserID string `validate:"required,len=24,hexadecimal"`
}

type OTPDisableOutput struct {
	User entity.User
}

func (s *Usecase) OTPDisable(ctx context.Context, in OTPDisableInput) (*OTPDisableOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPDisable")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	// Only the enabled flag is cleared. The secret and the verified flag stay,
	// so codes keep validating and a later re-enable needs no re-enrollment.
	updated, err := s.repoDB.DisableOTP(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "otp disable for unknown user", "user_id", in.UserID)
			return nil, goerror.NewBusiness("No user with this id exists", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo disable otp", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publishAsync(ctx, func(ctx context.Context) error {
		if err := s.repoMessaging.PublishOTPDisabled(ctx, OTPDisabledEvent{
			UserID: in.UserID,
			Email:  updated.Email,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish otp disabled", "user_id", in.UserID, "error", err)
		}
		return nil
	})

	return &OTPDisableOutput{User: *updated}, nil
}
