package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match wrapped domain errors by code
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Credential errors: user-facing, recoverable by re-authenticating
	ErrMissingToken   = NewDomainError("MISSING_TOKEN", "Access Denied: Missing Token")
	ErrInvalidToken   = NewDomainError("INVALID_TOKEN", "Access Denied: Invalid Token")
	ErrSessionTimeout = NewDomainError("SESSION_TIMEOUT", "Session Timeout: Please login again")
	ErrSessionExpired = NewDomainError("SESSION_EXPIRED", "Session Expired: Please login again")

	// User errors
	ErrUserNotFound       = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrUserBlocked        = NewDomainError("USER_BLOCKED", "user is not allowed to login")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid credentials")
	ErrNoFieldsToUpdate   = NewDomainError("NO_FIELDS_TO_UPDATE", "no fields provided for update")

	// Constraint errors mapped from the database
	ErrDuplicateKey      = NewDomainError("DUPLICATE_KEY", "already exists with the provided ID or email")
	ErrForeignKey        = NewDomainError("FOREIGN_KEY", "referenced foreign key does not exist")
	ErrCheckConstraint   = NewDomainError("CHECK_CONSTRAINT", "invalid data provided according to database constraints")
	ErrTableNotFound     = NewDomainError("TABLE_NOT_FOUND", "internal server error: database table not found")
	ErrConnectionDropped = NewDomainError("CONNECTION_DROPPED", "database connection error")

	// Infrastructure errors: surfaced as server errors, never as credential rejections
	ErrStorage  = NewDomainError("STORAGE_ERROR", "storage operation failed")
	ErrInternal = NewDomainError("INTERNAL_ERROR", "internal server error")
)

// Postgres SQLSTATE codes recognized by the constraint mapping
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgUndefinedTable      = "42P01"
	pgConnectionDoesNot   = "08003"
)

// FromPostgres maps a driver error to a domain error. Constraint violations
// become client-facing errors; infrastructure failures stay server errors.
func FromPostgres(err error) *DomainError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return WrapError(ErrDuplicateKey, err)
		case pgForeignKeyViolation:
			return WrapError(ErrForeignKey, err)
		case pgCheckViolation:
			return WrapError(ErrCheckConstraint, err)
		case pgUndefinedTable:
			return WrapError(ErrTableNotFound, err)
		case pgConnectionDoesNot:
			return WrapError(ErrConnectionDropped, err)
		}
	}

	return WrapError(ErrStorage, err)
}

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "NO_FIELDS_TO_UPDATE", "FOREIGN_KEY", "CHECK_CONSTRAINT":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "MISSING_TOKEN", "INVALID_CREDENTIALS", "SESSION_TIMEOUT", "SESSION_EXPIRED", "USER_BLOCKED":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "INVALID_TOKEN":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "DUPLICATE_KEY":
		return http.StatusConflict

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
