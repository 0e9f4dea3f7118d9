package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
)

const unknownID = "aaaaaaaaaaaaaaaaaaaaaaaa"

func (f *fixture) enroll(t *testing.T, id string) *OTPGenerateOutput {
	t.Helper()

	out, err := f.uc.OTPGenerate(context.Background(), OTPGenerateInput{UserID: id})
	if err != nil {
		t.Fatalf("otp generate: %v", err)
	}

	return out
}

func (f *fixture) code(t *testing.T, secret string, at time.Time) string {
	t.Helper()

	code, err := f.totp.GenerateCode(secret, at)
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	return code
}

func TestOTPGenerate(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "jane@example.com")

	out := f.enroll(t, id)
	if out.Base32 == "" {
		t.Fatal("expected a secret")
	}
	if !strings.Contains(out.AuthURL, "issuer=example.com") {
		t.Fatalf("auth url missing issuer: %s", out.AuthURL)
	}

	u, err := f.db.GetUserByID(context.Background(), id)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if u.OTPBase32 != out.Base32 || u.OTPAuthURL != out.AuthURL {
		t.Fatal("secret and auth url must be persisted together")
	}
	if u.OTPEnabled || u.OTPVerified {
		t.Fatal("generate must not enable or verify")
	}
}

func TestOTPGenerateUnknownAndMalformedUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.OTPGenerate(context.Background(), OTPGenerateInput{UserID: unknownID})
	assertCode(t, err, goerror.CodeNotFound)

	_, err = f.uc.OTPGenerate(context.Background(), OTPGenerateInput{UserID: "not-hex"})
	assertCode(t, err, goerror.CodeInvalidInput)
}

func TestOTPGenerateOverwrites(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "jane@example.com")

	first := f.enroll(t, id)
	oldCode := f.code(t, first.Base32, f.clock.at)

	f.enroll(t, id)

	_, err := f.uc.OTPVerify(context.Background(), OTPVerifyInput{UserID: id, Token: oldCode})
	assertCode(t, err, goerror.CodeInvalidInput)
}

func TestOTPVerify(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "jane@example.com")
	out := f.enroll(t, id)

	createdAt, _ := f.db.GetUserByID(context.Background(), id)

	res, err := f.uc.OTPVerify(context.Background(), OTPVerifyInput{
		UserID: id,
		Token:  f.code(t, out.Base32, f.clock.at),
	})
	if err != nil {
		t.Fatalf("otp verify: %v", err)
	}
	if !res.User.OTPEnabled || !res.User.OTPVerified {
		t.Fatal("verify must enable and mark verified")
	}
	if !res.User.UpdatedAt.Equal(createdAt.UpdatedAt) {
		t.Fatal("verify must not touch updated_at")
	}

	if err := f.g.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	var enabled bool
	for _, dest := range f.msg.destinations() {
		if dest == "otp.enabled" {
			enabled = true
		}
	}
	if !enabled {
		t.Fatalf("published = %v, want otp.enabled", f.msg.destinations())
	}
}

func TestOTPVerifyGenericFailures(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "jane@example.com")
	out := f.enroll(t, id)

	wrong := f.code(t, out.Base32, f.clock.at.Add(-5*time.Minute))

	tests := []struct {
		name string
		in   OTPVerifyInput
	}{
		{"unknown user", OTPVerifyInput{UserID: unknownID, Token: "123456"}},
		{"malformed id", OTPVerifyInput{UserID: "zz", Token: "123456"}},
		{"wrong code", OTPVerifyInput{UserID: id, Token: wrong}},
		{"non numeric token", OTPVerifyInput{UserID: id, Token: "abcdef"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.OTPVerify(context.Background(), tc.in)
			assertCode(t, err, goerror.CodeInvalidInput)

			if err.(*goerror.Error).Msg() != "Token is invalid or user doesn't exist" {
				t.Fatalf("message must stay generic, got %q", err.(*goerror.Error).Msg())
			}
		})
	}

	u, _ := f.db.GetUserByID(context.Background(), id)
	if u.OTPEnabled || u.OTPVerified {
		t.Fatal("failed verify attempts must not change state")
	}
}

func TestOTPVerifyRejectsSkewedCode(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "jane@example.com")
	out := f.enroll(t, id)

	// One step in the past passes Validate but must fail enrollment.
	prev := f.code(t, out.Base32, f.clock.at.Add(-30*time.Second))

	_, err := f.uc.OTPVerify(context.Background(), OTPVerifyInput{UserID: id, Token: prev})
	assertCode(t, err, goerror.CodeInvalidInput)
}

func TestOTPValidate(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "jane@example.com")
	out := f.enroll(t, id)

	if _, err := f.uc.OTPVerify(context.Background(), OTPVerifyInput{
		UserID: id,
		Token:  f.code(t, out.Base32, f.clock.at),
	}); err != nil {
		t.Fatalf("otp verify: %v", err)
	}

	// Codes one step either side are fine during ongoing validation.
	for _, offset := range []time.Duration{0, -30 * time.Second, 30 * time.Second} {
		if err := f.uc.OTPValidate(context.Background(), OTPValidateInput{
			UserID: id,
			Token:  f.code(t, out.Base32, f.clock.at.Add(offset)),
		}); err != nil {
			t.Fatalf("validate with offset %v: %v", offset, err)
		}
	}

	err := f.uc.OTPValidate(context.Background(), OTPValidateInput{
		UserID: id,
		Token:  f.code(t, out.Base32, f.clock.at.Add(-2*time.Minute)),
	})
	assertCode(t, err, goerror.CodeInvalidInput)
}

func TestOTPValidateRequiresVerification(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "jane@example.com")
	out := f.enroll(t, id)

	err := f.uc.OTPValidate(context.Background(), OTPValidateInput{
		UserID: id,
		Token:  f.code(t, out.Base32, f.clock.at),
	})
	assertCode(t, err, goerror.CodeUnauthorized)
}

func TestOTPValidateThrottled(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "jane@example.com")
	f.uc.otpLimiter = stubLimiter{allow: false}

	err := f.uc.OTPValidate(context.Background(), OTPValidateInput{UserID: id, Token: "123456"})
	assertCode(t, err, goerror.CodeTooManyRequest)
}

func TestOTPDisable(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "jane@example.com")
	out := f.enroll(t, id)

	if _, err := f.uc.OTPVerify(context.Background(), OTPVerifyInput{
		UserID: id,
		Token:  f.code(t, out.Base32, f.clock.at),
	}); err != nil {
		t.Fatalf("otp verify: %v", err)
	}

	res, err := f.uc.OTPDisable(context.Background(), OTPDisableInput{UserID: id})
	if err != nil {
		t.Fatalf("otp disable: %v", err)
	}
	if res.User.OTPEnabled {
		t.Fatal("disable must clear the enabled flag")
	}
	if !res.User.OTPVerified {
		t.Fatal("disable must leave the verified flag alone")
	}
	if res.User.OTPBase32 != out.Base32 {
		t.Fatal("disable must keep the secret")
	}

	// The enrollment is still verified, so codes keep validating.
	if err := f.uc.OTPValidate(context.Background(), OTPValidateInput{
		UserID: id,
		Token:  f.code(t, out.Base32, f.clock.at),
	}); err != nil {
		t.Fatalf("validate after disable: %v", err)
	}
}

func TestOTPDisableUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.OTPDisable(context.Background(), OTPDisableInput{UserID: unknownID})
	assertCode(t, err, goerror.CodeNotFound)
}
