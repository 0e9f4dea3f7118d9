package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
)

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@example.com")

	out, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "JANE@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if out.User.Email != "jane@example.com" {
		t.Fatalf("unexpected user: %q", out.User.Email)
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@example.com")

	_, unknownErr := f.uc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	assertCode(t, unknownErr, goerror.CodeInvalidInput)

	_, wrongErr := f.uc.Login(context.Background(), LoginInput{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})
	assertCode(t, wrongErr, goerror.CodeInvalidInput)

	// Same message for both so responses do not reveal which part failed.
	if unknownErr.(*goerror.Error).Msg() != wrongErr.(*goerror.Error).Msg() {
		t.Fatal("unknown email and wrong password must share one message")
	}
}

func TestLoginThrottled(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@example.com")
	f.uc.loginLimiter = stubLimiter{allow: false}

	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	assertCode(t, err, goerror.CodeTooManyRequest)
}

func TestLoginLimiterOutageFailsOpen(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@example.com")
	f.uc.loginLimiter = stubLimiter{err: context.DeadlineExceeded}

	if _, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("login must succeed when the limiter is unreachable: %v", err)
	}
}
