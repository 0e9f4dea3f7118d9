package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gotp/internal/auth/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/ratelimit"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	User entity.User
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := s.throttle(ctx, s.loginLimiter, "login:"+email); err != nil {
		return nil, err
	}

	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown email", "email", email)
		return nil, goerror.NewBusiness("Incorrect Email or Password", goerror.CodeInvalidInput)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "login password mismatch", "user_id", user.ID.Hex())
		return nil, goerror.NewBusiness("Incorrect Email or Password", goerror.CodeInvalidInput)
	}

	return &LoginOutput{User: *user}, nil
}

// throttle checks the fixed-window counter for key. Limiter outages fail
// open: an unreachable Redis must not lock every account out.
func (s *Usecase) throttle(ctx context.Context, limiter ratelimit.Limiter, key string) error {
	ok, err := limiter.Allow(ctx, key)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check rate limit", "key", key, "error", err)
		return nil
	}

	if !ok {
		slog.WarnContext(ctx, "rate limit exceeded", "key", key)
		return goerror.NewBusiness("Too many attempts, please try again later", goerror.CodeTooManyRequest)
	}

	return nil
}
