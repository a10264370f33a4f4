package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDomainError_Is(t *testing.T) {
	wrapped := WrapError(ErrDuplicateKey, errors.New("duplicate key value violates unique constraint"))

	if !errors.Is(wrapped, ErrDuplicateKey) {
		t.Error("Wrapped error must match its domain variant by code")
	}
	if errors.Is(wrapped, ErrForeignKey) {
		t.Error("Wrapped error must not match a different code")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := WrapError(ErrStorage, cause)

	if !errors.Is(wrapped, cause) {
		t.Error("Underlying cause must be reachable through Unwrap")
	}
}

func TestDomainError_ErrorString(t *testing.T) {
	if got := ErrUserNotFound.Error(); got != "user not found" {
		t.Errorf("Expected bare message, got %q", got)
	}

	wrapped := WrapError(ErrStorage, errors.New("timeout"))
	if got := wrapped.Error(); got != "storage operation failed: timeout" {
		t.Errorf("Expected message with cause, got %q", got)
	}
}

func TestFromPostgres(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected *DomainError
	}{
		{"Unique violation", "23505", ErrDuplicateKey},
		{"Foreign key violation", "23503", ErrForeignKey},
		{"Check violation", "23514", ErrCheckConstraint},
		{"Undefined table", "42P01", ErrTableNotFound},
		{"Connection does not exist", "08003", ErrConnectionDropped},
		{"Unrecognized code", "57014", ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tt.code, Message: "db says no"}
			got := FromPostgres(fmt.Errorf("query failed: %w", pgErr))

			if !errors.Is(got, tt.expected) {
				t.Errorf("Code %s: expected %s, got %s", tt.code, tt.expected.Code, got.Code)
			}
			if !errors.Is(got, pgErr) {
				t.Error("Driver error must stay reachable through the wrap")
			}
		})
	}
}

func TestFromPostgres_NonDriverError(t *testing.T) {
	got := FromPostgres(errors.New("dial tcp: connection refused"))
	if !errors.Is(got, ErrStorage) {
		t.Errorf("Expected storage error, got %v", got)
	}
}

func TestFromPostgres_Nil(t *testing.T) {
	if got := FromPostgres(nil); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Nil", nil, http.StatusOK},
		{"Missing token", ErrMissingToken, http.StatusUnauthorized},
		{"Invalid token", ErrInvalidToken, http.StatusForbidden},
		{"Session timeout", ErrSessionTimeout, http.StatusUnauthorized},
		{"Session expired", ErrSessionExpired, http.StatusUnauthorized},
		{"Invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"Blocked user", ErrUserBlocked, http.StatusUnauthorized},
		{"User not found", ErrUserNotFound, http.StatusNotFound},
		{"No fields", ErrNoFieldsToUpdate, http.StatusBadRequest},
		{"Duplicate key", ErrDuplicateKey, http.StatusConflict},
		{"Foreign key", ErrForeignKey, http.StatusBadRequest},
		{"Check constraint", ErrCheckConstraint, http.StatusBadRequest},
		{"Table missing", ErrTableNotFound, http.StatusInternalServerError},
		{"Connection dropped", ErrConnectionDropped, http.StatusInternalServerError},
		{"Storage", ErrStorage, http.StatusInternalServerError},
		{"Plain error", errors.New("boom"), http.StatusInternalServerError},
		{"Wrapped domain error", fmt.Errorf("context: %w", ErrUserNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTTPStatus(tt.err); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	if got := GetErrorMessage(ErrMissingToken); got != "Access Denied: Missing Token" {
		t.Errorf("Unexpected message: %q", got)
	}

	wrapped := WrapError(ErrInvalidToken, errors.New("signature is invalid"))
	if got := GetErrorMessage(wrapped); got != "Access Denied: Invalid Token" {
		t.Errorf("Wrapped message must not leak the cause, got %q", got)
	}

	if got := GetErrorMessage(errors.New("plain")); got != "plain" {
		t.Errorf("Expected plain message passthrough, got %q", got)
	}

	if got := GetErrorMessage(nil); got != "" {
		t.Errorf("Expected empty for nil, got %q", got)
	}
}
