// Package auth wires the registration, login and TOTP two-factor workflows.
package auth

import (
	"context"

	"github.com/shandysiswandi/gotp/internal/auth/inbound"
	"github.com/shandysiswandi/gotp/internal/auth/outbound/db"
	"github.com/shandysiswandi/gotp/internal/auth/outbound/mq"
	"github.com/shandysiswandi/gotp/internal/auth/usecase"
	"github.com/shandysiswandi/gotp/internal/pkg/clock"
	"github.com/shandysiswandi/gotp/internal/pkg/config"
	"github.com/shandysiswandi/gotp/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotp/internal/pkg/hash"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"github.com/shandysiswandi/gotp/internal/pkg/messaging"
	"github.com/shandysiswandi/gotp/internal/pkg/otp"
	"github.com/shandysiswandi/gotp/internal/pkg/ratelimit"
	"github.com/shandysiswandi/gotp/internal/pkg/router"
	"github.com/shandysiswandi/gotp/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type Dependency struct {
	Ctx          context.Context            `validate:"required"`
	Database     *mongo.Database            `validate:"required"`
	Goroutine    *goroutine.Manager         `validate:"required"`
	Router       *router.Router             `validate:"required"`
	Messaging    messaging.Messaging        `validate:"required"`
	Config       config.Config              `validate:"required"`
	Instrument   instrument.Instrumentation `validate:"required"`
	Bcrypt       hash.Hash                  `validate:"required"`
	Clock        clock.Clocker              `validate:"required"`
	Totp         otp.OTP                    `validate:"required"`
	Validator    validator.Validator        `validate:"required"`
	LoginLimiter ratelimit.Limiter          `validate:"required"`
	OTPLimiter   ratelimit.Limiter          `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.Database, dep.Instrument)
	if err := dbAuth.EnsureIndexes(dep.Ctx); err != nil {
		return err
	}

	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		Totp:          dep.Totp,
		Clock:         dep.Clock,
		LoginLimiter:  dep.LoginLimiter,
		OTPLimiter:    dep.OTPLimiter,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
