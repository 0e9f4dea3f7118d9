package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)

	if err := f.uc.Register(context.Background(), RegisterInput{
		Name:     "Jane Doe",
		Email:    "Jane@Example.COM",
		Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := f.db.GetUserByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Password == "s3cret-pass" {
		t.Fatal("password stored in plain text")
	}
	if u.OTPEnabled || u.OTPVerified {
		t.Fatal("new accounts must start with OTP off")
	}
	if !u.CreatedAt.Equal(f.clock.at) || !u.UpdatedAt.Equal(f.clock.at) {
		t.Fatalf("timestamps not set from clock: %v %v", u.CreatedAt, u.UpdatedAt)
	}

	if err := f.g.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if got := f.msg.destinations(); len(got) != 1 || got[0] != "user.registered" {
		t.Fatalf("published = %v, want [user.registered]", got)
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@example.com")

	err := f.uc.Register(context.Background(), RegisterInput{
		Name:     "Jane Again",
		Email:    "JANE@EXAMPLE.COM",
		Password: "another-pass",
	})
	assertCode(t, err, goerror.CodeConflict)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@b.com", Password: "s3cret-pass"}},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "s3cret-pass"}},
		{"short password", RegisterInput{Name: "A", Email: "a@b.com", Password: "short"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := f.uc.Register(context.Background(), tc.in)
			assertCode(t, err, goerror.CodeInvalidInput)
		})
	}
}
