package otp

import (
	"strings"
	"testing"
	"time"

	libotp "github.com/pquerna/otp"
)

func TestTOTPGenerate(t *testing.T) {
	tp := NewTOTP("example.com", 30, libotp.DigitsSix)

	secret, uri, err := tp.Generate("admin@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if secret == "" {
		t.Fatal("expected non-empty secret")
	}
	if !strings.HasPrefix(uri, "otpauth://totp/") {
		t.Fatalf("unexpected uri: %s", uri)
	}
	if !strings.Contains(uri, "issuer=example.com") {
		t.Fatalf("uri missing issuer: %s", uri)
	}

	again, _, err := tp.Generate("admin@example.com")
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}
	if again == secret {
		t.Fatal("expected a fresh secret on every generate")
	}
}

func TestTOTPValidateSkew(t *testing.T) {
	tp := NewTOTP("example.com", 30, libotp.DigitsSix)

	secret, _, err := tp.Generate("admin@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	code, err := tp.GenerateCode(secret, now)
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	if !tp.Validate(code, secret, now, 0) {
		t.Fatal("current code must validate with zero skew")
	}

	prev, err := tp.GenerateCode(secret, now.Add(-30*time.Second))
	if err != nil {
		t.Fatalf("generate previous code: %v", err)
	}
	if tp.Validate(prev, secret, now, 0) {
		t.Fatal("previous step must fail with zero skew")
	}
	if !tp.Validate(prev, secret, now, 1) {
		t.Fatal("previous step must pass with one step of skew")
	}

	far, err := tp.GenerateCode(secret, now.Add(-120*time.Second))
	if err != nil {
		t.Fatalf("generate old code: %v", err)
	}
	if tp.Validate(far, secret, now, 1) {
		t.Fatal("code four steps old must fail even with skew")
	}
}

func TestTOTPValidateWrongSecret(t *testing.T) {
	tp := NewTOTP("example.com", 30, libotp.DigitsSix)

	secretA, _, err := tp.Generate("admin@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	secretB, _, err := tp.Generate("admin@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	now := time.Now()
	code, err := tp.GenerateCode(secretA, now)
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	if tp.Validate(code, secretB, now, 1) {
		t.Fatal("code for the old secret must fail against the new one")
	}
}
