package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gotp/internal/auth/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
)

type RegisterInput struct {
	Name     string `validate:"required,min=1,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	_, err := s.repoDB.GetUserByEmail(ctx, email)
	if err == nil {
		slog.WarnContext(ctx, "registration with existing email", "email", email)
		return goerror.NewBusiness("Account already exist", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	hashed, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	now := s.clock.Now()
	user := entity.User{
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}

	userID, err := s.repoDB.CreateUser(ctx, user)
	if err != nil {
		// Another request may have inserted the same email between the lookup
		// and this insert; the unique index is the source of truth.
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "registration lost insert race", "email", email)
			return goerror.NewBusiness("Account already exist", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo create user", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	s.publishAsync(ctx, func(ctx context.Context) error {
		if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
			UserID: userID,
			Email:  email,
			Name:   user.Name,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish user registered", "email", email, "error", err)
		}
		return nil
	})

	return nil
}
