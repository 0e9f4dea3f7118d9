package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"server", NewServer(errors.New("boom")), http.StatusInternalServerError},
		{"invalid format", NewInvalidFormat(), http.StatusBadRequest},
		{"invalid input", NewInvalidInput(errors.New("bad")), http.StatusBadRequest},
		{"not found", NewBusiness("missing", CodeNotFound), http.StatusNotFound},
		{"conflict", NewBusiness("dup", CodeConflict), http.StatusConflict},
		{"unauthorized", NewBusiness("nope", CodeUnauthorized), http.StatusUnauthorized},
		{"too many", NewBusiness("slow down", CodeTooManyRequest), http.StatusTooManyRequests},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gerr *Error
			if !errors.As(tc.err, &gerr) {
				t.Fatalf("expected *Error, got %T", tc.err)
			}
			if got := gerr.StatusCode(); got != tc.want {
				t.Fatalf("status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSentinelWrapping(t *testing.T) {
	err := NewServer(ErrNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("wrapped sentinel must survive errors.Is")
	}
}
