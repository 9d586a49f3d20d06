package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "error with cause",
			err: Wrap(KindConfig, "load", "failed to load config",
				errors.New("file not found")),
			contains: []string{"[config:load]", "failed to load config", "file not found"},
		},
		{
			name:     "error without cause",
			err:      New(KindAuth, "login", "invalid credentials"),
			contains: []string{"[auth:login]", "invalid credentials"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(errStr, substr) {
					t.Errorf("error string %q does not contain %q", errStr, substr)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrappedErr := Wrap(KindNetwork, "request", "wrapped", originalErr)

	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Unwrap should return the original error")
	}
}

func TestIsKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		expected bool
	}{
		{
			name:     "direct error kind match",
			err:      New(KindAuth, "refresh", "message"),
			kind:     KindAuth,
			expected: true,
		},
		{
			name:     "wrapped error kind match",
			err:      Wrap(KindNetwork, "request", "message", errors.New("cause")),
			kind:     KindNetwork,
			expected: true,
		},
		{
			name:     "error kind mismatch",
			err:      New(KindAuth, "login", "message"),
			kind:     KindAPI,
			expected: false,
		},
		{
			name:     "non-typed error",
			err:      errors.New("plain error"),
			kind:     KindAuth,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsKind(tt.err, tt.kind)
			if result != tt.expected {
				t.Errorf("IsKind() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestNewAPI_DetailPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		detail  map[string]any
		wantMsg string
	}{
		{
			name:    "detail field wins",
			detail:  map[string]any{"detail": "token expired", "message": "other"},
			wantMsg: "token expired",
		},
		{
			name:    "message used when detail absent",
			detail:  map[string]any{"message": "not allowed"},
			wantMsg: "not allowed",
		},
		{
			name:    "generic fallback",
			detail:  nil,
			wantMsg: "request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := NewAPI("request", 403, tt.detail)
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, expected %q", apiErr.Message, tt.wantMsg)
			}
			if apiErr.Status != 403 {
				t.Errorf("Status = %d, expected 403", apiErr.Status)
			}
			if !IsKind(apiErr, KindAPI) {
				t.Error("APIError should match KindAPI")
			}
		})
	}
}

func TestAsAPI(t *testing.T) {
	apiErr := NewAPI("request", 500, nil)

	extracted, ok := AsAPI(apiErr)
	if !ok || extracted.Status != 500 {
		t.Errorf("AsAPI() = %v, %v; expected the original APIError", extracted, ok)
	}

	if _, ok := AsAPI(errors.New("plain")); ok {
		t.Error("AsAPI should not match a plain error")
	}
}
