package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

func registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "E2E User",
		"email":    email,
		"password": "s3cret-pass",
	})
	if status != http.StatusCreated {
		t.Fatalf("register status = %d, body %v", status, body)
	}

	status, body = doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": "s3cret-pass",
	})
	if status != http.StatusOK {
		t.Fatalf("login status = %d, body %v", status, body)
	}

	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("login body missing user: %v", body)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatal("password must never be serialized")
	}

	id, _ := user["id"].(string)
	if id == "" {
		t.Fatalf("login body missing user id: %v", body)
	}

	return id
}

func code(t *testing.T, secret string, at time.Time) string {
	t.Helper()

	c, err := totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
		Period:    30,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	return c
}

func TestHealthchecker(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/api/healthchecker", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body["status"] != "success" {
		t.Fatalf("body = %v", body)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	email := uniqueEmail("dup")
	registerAndLogin(t, email)

	status, body := doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "E2E User",
		"email":    email,
		"password": "s3cret-pass",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, body %v", status, body)
	}
	if body["status"] != "fail" {
		t.Fatalf("body = %v", body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	email := uniqueEmail("badpass")
	registerAndLogin(t, email)

	status, body := doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": "wrong-password",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["message"] != "Incorrect Email or Password" {
		t.Fatalf("body = %v", body)
	}
}

func TestOTPFullFlow(t *testing.T) {
	email := uniqueEmail("otp")
	id := registerAndLogin(t, email)

	status, body := doJSON(t, http.MethodPost, "/api/auth/otp/generate", map[string]string{
		"user_id": id,
	})
	if status != http.StatusOK {
		t.Fatalf("generate status = %d, body %v", status, body)
	}

	secret, _ := body["base32"].(string)
	if secret == "" {
		t.Fatalf("generate body missing base32: %v", body)
	}

	status, body = doJSON(t, http.MethodPost, "/api/auth/otp/verify", map[string]string{
		"user_id": id,
		"token":   code(t, secret, time.Now()),
	})
	if status != http.StatusOK {
		t.Fatalf("verify status = %d, body %v", status, body)
	}
	if body["otp_verified"] != true {
		t.Fatalf("verify body = %v", body)
	}

	status, body = doJSON(t, http.MethodPost, "/api/auth/otp/validate", map[string]string{
		"user_id": id,
		"token":   code(t, secret, time.Now()),
	})
	if status != http.StatusOK {
		t.Fatalf("validate status = %d, body %v", status, body)
	}
	if body["otp_valid"] != true {
		t.Fatalf("validate body = %v", body)
	}

	status, body = doJSON(t, http.MethodPost, "/api/auth/otp/disable", map[string]string{
		"user_id": id,
	})
	if status != http.StatusOK {
		t.Fatalf("disable status = %d, body %v", status, body)
	}
	if body["otp_disabled"] != true {
		t.Fatalf("disable body = %v", body)
	}

	user, _ := body["user"].(map[string]any)
	if user["otp_enabled"] != false || user["otp_verified"] != true {
		t.Fatalf("disable user = %v", user)
	}

	// Disable does not un-verify, so validation still works.
	status, body = doJSON(t, http.MethodPost, "/api/auth/otp/validate", map[string]string{
		"user_id": id,
		"token":   code(t, secret, time.Now()),
	})
	if status != http.StatusOK {
		t.Fatalf("validate after disable status = %d, body %v", status, body)
	}
}

func TestOTPVerifyWrongToken(t *testing.T) {
	email := uniqueEmail("wrongtoken")
	id := registerAndLogin(t, email)

	status, body := doJSON(t, http.MethodPost, "/api/auth/otp/generate", map[string]string{
		"user_id": id,
	})
	if status != http.StatusOK {
		t.Fatalf("generate status = %d, body %v", status, body)
	}

	status, body = doJSON(t, http.MethodPost, "/api/auth/otp/verify", map[string]string{
		"user_id": id,
		"token":   "000000",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("verify status = %d, body %v", status, body)
	}
	if body["message"] != "Token is invalid or user doesn't exist" {
		t.Fatalf("body = %v", body)
	}
}
