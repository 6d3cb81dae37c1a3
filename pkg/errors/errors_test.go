package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := New(ErrorTypeInvalidURL, "not an Instagram post URL")
	want := "invalid_url error: not an Instagram post URL"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}

	withCode := NewWithCode(ErrorTypePostNotFound, "no media found", 404)
	want = "post_not_found error (code 404): no media found"
	if withCode.Error() != want {
		t.Errorf("Expected %q, got %q", want, withCode.Error())
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrorTypeInsufficientParticipants, "%d eligible, %d needed", 2, 5)
	if err.Message != "2 eligible, 5 needed" {
		t.Errorf("Expected formatted message, got %q", err.Message)
	}
}

func TestTypeOf(t *testing.T) {
	if got := TypeOf(New(ErrorTypeVerificationFailed, "bad code")); got != ErrorTypeVerificationFailed {
		t.Errorf("Expected verification_failed, got %s", got)
	}

	if got := TypeOf(stderrors.New("plain error")); got != ErrorTypeUnknown {
		t.Errorf("Expected unknown for plain errors, got %s", got)
	}

	// Wrapped typed errors are still recognized
	wrapped := fmt.Errorf("context: %w", New(ErrorTypeNoPendingChallenge, "nothing stored"))
	if got := TypeOf(wrapped); got != ErrorTypeNoPendingChallenge {
		t.Errorf("Expected no_pending_challenge through wrapping, got %s", got)
	}
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeCheckpointRequired, "account blocked")

	if !IsType(err, ErrorTypeCheckpointRequired) {
		t.Error("Expected IsType to match the error's own type")
	}
	if IsType(err, ErrorTypeNetwork) {
		t.Error("Expected IsType to reject other types")
	}
	if IsType(stderrors.New("plain"), ErrorTypeUnknown) {
		t.Error("Expected IsType to reject non-typed errors")
	}
	if IsType(nil, ErrorTypeUnknown) {
		t.Error("Expected IsType to reject nil")
	}
}

func TestIsRetryable(t *testing.T) {
	retryable := []ErrorType{ErrorTypeNetwork, ErrorTypeRateLimit, ErrorTypeServerError}
	for _, errorType := range retryable {
		if !IsRetryable(errorType) {
			t.Errorf("Expected %s to be retryable", errorType)
		}
	}

	terminal := []ErrorType{
		ErrorTypeInvalidURL, ErrorTypeInvalidCredentials, ErrorTypeCheckpointRequired,
		ErrorTypeVerificationFailed, ErrorTypePostNotFound, ErrorTypeInsufficientParticipants,
	}
	for _, errorType := range terminal {
		if IsRetryable(errorType) {
			t.Errorf("Expected %s not to be retryable", errorType)
		}
	}
}

func TestIsRetryableStatusCode(t *testing.T) {
	for _, code := range []int{0, 429, 500, 502, 503, 504, 599} {
		if !IsRetryableStatusCode(code) {
			t.Errorf("Expected status %d to be retryable", code)
		}
	}
	for _, code := range []int{200, 400, 401, 403, 404} {
		if IsRetryableStatusCode(code) {
			t.Errorf("Expected status %d not to be retryable", code)
		}
	}
}
