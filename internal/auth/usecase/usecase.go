package usecase

import (
	"context"

	"github.com/shandysiswandi/gotp/internal/auth/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/clock"
	"github.com/shandysiswandi/gotp/internal/pkg/config"
	"github.com/shandysiswandi/gotp/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotp/internal/pkg/hash"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"github.com/shandysiswandi/gotp/internal/pkg/otp"
	"github.com/shandysiswandi/gotp/internal/pkg/ratelimit"
	"github.com/shandysiswandi/gotp/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// Code comparison skews: enrollment accepts only the current step, ongoing
// validation tolerates one step of clock drift either way.
const (
	verifySkew   uint = 0
	validateSkew uint = 1
)

type UserRegisteredEvent struct {
	UserID string
	Email  string
	Name   string
}

type OTPEnabledEvent struct {
	UserID string
	Email  string
}

type OTPDisabledEvent struct {
	UserID string
	Email  string
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishOTPEnabled(ctx context.Context, msg OTPEnabledEvent) error
	PublishOTPDisabled(ctx context.Context, msg OTPDisabledEvent) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)

	CreateUser(ctx context.Context, user entity.User) (string, error)

	SetOTPSecret(ctx context.Context, id, base32, authURL string) (*entity.User, error)
	EnableOTP(ctx context.Context, id string) (*entity.User, error)
	DisableOTP(ctx context.Context, id string) (*entity.User, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	totp          otp.OTP
	clock         clock.Clocker
	loginLimiter  ratelimit.Limiter
	otpLimiter    ratelimit.Limiter
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	Totp          otp.OTP
	Clock         clock.Clocker
	LoginLimiter  ratelimit.Limiter
	OTPLimiter    ratelimit.Limiter
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		totp:          dep.Totp,
		clock:         dep.Clock,
		loginLimiter:  dep.LoginLimiter,
		otpLimiter:    dep.OTPLimiter,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

// publishAsync hands the event off to the goroutine manager so slow brokers
// never delay the response. The request context is detached because the
// request finishes before the publish does.
func (s *Usecase) publishAsync(ctx context.Context, publish func(ctx context.Context) error) {
	s.goroutine.Go(context.WithoutCancel(ctx), publish)
}
