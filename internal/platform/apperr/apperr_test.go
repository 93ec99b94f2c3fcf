package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"bad request", BadRequest("invalid_input", "bad", nil), http.StatusBadRequest},
		{"not found", NotFound("not_found", "missing", nil), http.StatusNotFound},
		{"conflict", Conflict("conflict", "dup", nil), http.StatusConflict},
		{"unauthorized", Unauthorized("invalid_credentials", "nope", nil), http.StatusUnauthorized},
		{"unavailable", Unavailable("store_unreachable", "down", cause), http.StatusServiceUnavailable},
		{"internal", Internal("internal_error", "oops", cause), http.StatusInternalServerError},
		{"zero value defaults to 500", &AppError{Code: "x"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	e := BadRequest("invalid_input", "question required", nil)
	if e.Error() != "question required" {
		t.Errorf("Error() = %q, want %q", e.Error(), "question required")
	}

	e = &AppError{Code: "conflict"}
	if e.Error() != "conflict" {
		t.Errorf("Error() = %q, want code fallback %q", e.Error(), "conflict")
	}
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	e := Unavailable("store_unreachable", "store unreachable", cause)

	if !errors.Is(e, cause) {
		t.Fatal("expected errors.Is to reach the wrapped cause")
	}
}

func TestFromError(t *testing.T) {
	orig := NotFound("poll_not_found", "poll not found", nil)
	got := FromError(orig)
	if got != orig {
		t.Fatal("FromError should return the existing *AppError unchanged")
	}

	wrapped := FromError(errors.New("plain failure"))
	if wrapped.StatusCode() != http.StatusInternalServerError {
		t.Errorf("plain errors should map to 500, got %d", wrapped.StatusCode())
	}

	if FromError(nil) != nil {
		t.Error("FromError(nil) should be nil")
	}
}
