package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	libotp "github.com/pquerna/otp"
	"github.com/shandysiswandi/gotp/internal/auth/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/config"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotp/internal/pkg/hash"
	"github.com/shandysiswandi/gotp/internal/pkg/instrument"
	"github.com/shandysiswandi/gotp/internal/pkg/otp"
	"github.com/shandysiswandi/gotp/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// memDB is an in-memory stand-in for the Mongo store.
type memDB struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemDB() *memDB {
	return &memDB{users: map[string]*entity.User{}}
}

func (m *memDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (m *memDB) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	cp := *u
	return &cp, nil
}

func (m *memDB) CreateUser(_ context.Context, user entity.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return "", goerror.ErrConflict
		}
	}

	user.ID = bson.NewObjectID()
	m.users[user.ID.Hex()] = &user

	return user.ID.Hex(), nil
}

func (m *memDB) update(id string, fn func(*entity.User)) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	fn(u)
	cp := *u
	return &cp, nil
}

func (m *memDB) SetOTPSecret(_ context.Context, id, base32, authURL string) (*entity.User, error) {
	return m.update(id, func(u *entity.User) {
		u.OTPBase32 = base32
		u.OTPAuthURL = authURL
	})
}

func (m *memDB) EnableOTP(_ context.Context, id string) (*entity.User, error) {
	return m.update(id, func(u *entity.User) {
		u.OTPEnabled = true
		u.OTPVerified = true
	})
}

func (m *memDB) DisableOTP(_ context.Context, id string) (*entity.User, error) {
	return m.update(id, func(u *entity.User) {
		u.OTPEnabled = false
	})
}

type memMessaging struct {
	mu        sync.Mutex
	published []string
}

func (m *memMessaging) record(dest string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, dest)
}

func (m *memMessaging) destinations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.published...)
}

func (m *memMessaging) PublishUserRegistered(_ context.Context, _ UserRegisteredEvent) error {
	m.record("user.registered")
	return nil
}

func (m *memMessaging) PublishOTPEnabled(_ context.Context, _ OTPEnabledEvent) error {
	m.record("otp.enabled")
	return nil
}

func (m *memMessaging) PublishOTPDisabled(_ context.Context, _ OTPDisabledEvent) error {
	m.record("otp.disabled")
	return nil
}

type stubLimiter struct {
	allow bool
	err   error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) {
	return s.allow, s.err
}

type fixedClock struct{ at time.Time }

func (c *fixedClock) Now() time.Time { return c.at }

type stubConfig struct {
	config.Config
	strings map[string]string
}

func (s stubConfig) GetString(key string) string { return s.strings[key] }

type fixture struct {
	uc    *Usecase
	db    *memDB
	msg   *memMessaging
	totp  otp.OTP
	clock *fixedClock
	g     *goroutine.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	db := newMemDB()
	msg := &memMessaging{}
	tp := otp.NewTOTP("example.com", 30, libotp.DigitsSix)
	clk := &fixedClock{at: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)}
	g := goroutine.NewManager(8)

	uc := New(Dependency{
		RepoDB:        db,
		RepoMessaging: msg,
		Validator:     v,
		Config:        stubConfig{strings: map[string]string{"mfa.totp.account_name": "admin@example.com"}},
		Bcrypt:        hash.NewBcrypt(4, ""),
		Totp:          tp,
		Clock:         clk,
		LoginLimiter:  stubLimiter{allow: true},
		OTPLimiter:    stubLimiter{allow: true},
		Instrument:    instrument.NewNoop(),
		Goroutine:     g,
	})

	return &fixture{uc: uc, db: db, msg: msg, totp: tp, clock: clk, g: g}
}

// register creates an account and returns its id.
func (f *fixture) register(t *testing.T, email string) string {
	t.Helper()

	err := f.uc.Register(context.Background(), RegisterInput{
		Name:     "Jane Doe",
		Email:    email,
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := f.db.GetUserByEmail(context.Background(), strings.ToLower(email))
	if err != nil {
		t.Fatalf("lookup registered user: %v", err)
	}

	return u.ID.Hex()
}

func assertCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	gerr, ok := err.(*goerror.Error)
	if !ok {
		t.Fatalf("expected *goerror.Error, got %T (%v)", err, err)
	}
	if gerr.Code() != code {
		t.Fatalf("code = %v, want %v (msg %q)", gerr.Code(), code, gerr.Msg())
	}
}
