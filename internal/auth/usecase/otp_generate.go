package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
)

type OTPGenerateInput struct {
	UserID string `validate:"required,len=24,hexadecimal"`
}

type OTPGenerateOutput struct {
	Base32  string
	AuthURL string
}

func (s *Usecase) OTPGenerate(ctx context.Context, in OTPGenerateInput) (*OTPGenerateOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPGenerate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	secret, uri, err := s.totp.Generate(s.cfg.GetString("mfa.totp.account_name"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate totp secret", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Overwrites any previous secret, so codes from an earlier enrollment
	// stop working the moment this returns.
	if _, err := s.repoDB.SetOTPSecret(ctx, in.UserID, secret, uri); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "otp generate for unknown user", "user_id", in.UserID)
			return nil, goerror.NewBusiness("No user with this id exists", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo set otp secret", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &OTPGenerateOutput{Base32: secret, AuthURL: uri}, nil
}
