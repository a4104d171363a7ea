package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindExpired        ErrKind = "expired"        // 400
	KindState          ErrKind = "state"          // 400
	KindAuth           ErrKind = "auth"           // 401
	KindForbidden      ErrKind = "forbidden"      // 403
	KindNotFound       ErrKind = "not_found"      // 404
	KindConflict       ErrKind = "conflict"       // 409
	KindRateLimited    ErrKind = "rate_limited"   // 429
	KindInfrastructure ErrKind = "infrastructure" // 500
	KindInternal       ErrKind = "internal"       // 500
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Fields: optional field-level validation failures
// - Meta: optional details (scope, reason, etc.)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Fields  []FieldError
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// KindOf returns the kind of a domain error, or KindInternal for anything else.
func KindOf(err error) ErrKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "Invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return ErrValidation(FieldError{Field: field, Message: field + " is required"})
}

func ErrInvalidField(field, reason string) *Error {
	return ErrValidation(FieldError{Field: field, Message: reason})
}

// ErrValidation carries one or more field failures.
func ErrValidation(fields ...FieldError) *Error {
	e := New(KindValidation, "validation_failed", "Validation failed")
	e.Fields = fields
	return e
}

func ErrAllFieldsRequired() *Error {
	return New(KindValidation, "missing_fields", "All fields are required")
}

func ErrPasswordMismatch() *Error {
	return New(KindValidation, "password_mismatch", "Passwords do not match")
}

func ErrWeakPassword(reason string) *Error {
	return WithMeta(New(KindValidation, "weak_password", reason), map[string]string{
		"reason": reason,
	})
}

// Same message for a missing and a wrong code.
func ErrInvalidCode() *Error {
	return New(KindValidation, "invalid_code", "Invalid code")
}

func ErrInvalidID(field string) *Error {
	return ErrValidation(FieldError{Field: field, Message: "invalid id"})
}

// ----------------------
// Expired / state (400)
// ----------------------

func ErrCodeExpired() *Error {
	return New(KindExpired, "code_expired", "Code has expired. Please request a new one.")
}

func ErrAlreadyVerified() *Error {
	return New(KindState, "already_verified", "Account is already verified")
}

func ErrProjectInProgress() *Error {
	return New(KindState, "project_in_progress", "Cannot delete project that is currently in progress. Please change status first.")
}

// ----------------------
// Auth errors (401)
// ----------------------

// IMPORTANT: use this for login failures to avoid user enumeration.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "Invalid email or password")
}

func ErrNotVerified() *Error {
	return New(KindAuth, "not_verified", "Please verify your email before logging in.")
}

func ErrInvalidCurrentPassword() *Error {
	return New(KindAuth, "invalid_current_password", "Current password is incorrect")
}

func ErrTokenMissing() *Error {
	return New(KindAuth, "token_missing", "No token provided, authentication failed.")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "Invalid token")
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "Token expired")
}

func ErrRefreshTokenInvalid() *Error {
	return New(KindAuth, "refresh_token_invalid", "Invalid refresh token")
}

func ErrRefreshTokenExpired() *Error {
	return New(KindAuth, "refresh_token_expired", "Refresh token expired")
}

func ErrSessionRevoked() *Error {
	return New(KindAuth, "session_revoked", "Session is no longer valid")
}

// ----------------------
// Forbidden (403)
// ----------------------

func ErrForbidden() *Error {
	return New(KindForbidden, "forbidden", "Access denied. Insufficient permissions.")
}

func ErrForbiddenMsg(msg string) *Error {
	return New(KindForbidden, "forbidden", msg)
}

func ErrCannotAffectSelf() *Error {
	return New(KindForbidden, "cannot_affect_self", "cannot perform this action on self")
}

func ErrLastSuperadminProtected() *Error {
	return New(KindForbidden, "last_superadmin_protected", "cannot remove the last superadmin")
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "User not found")
}

func ErrEmployeeNotFound() *Error {
	return New(KindNotFound, "employee_not_found", "Employee not found")
}

func ErrProjectNotFound() *Error {
	return New(KindNotFound, "project_not_found", "Project not found")
}

// ----------------------
// Conflict (409)
// ----------------------

func ErrEmailAlreadyExists() *Error {
	return New(KindConflict, "email_already_exists", "User with this email already exists")
}

func ErrEmployeeEmailExists() *Error {
	return New(KindConflict, "employee_email_exists", "Employee with this email already exists")
}

func ErrEmployeeContactExists() *Error {
	return New(KindConflict, "employee_contact_exists", "Employee with this contact number already exists")
}

func ErrEmployeeOnProjects() *Error {
	return New(KindConflict, "employee_on_projects", "Cannot delete employee. They are assigned to active projects.")
}

func ErrProjectNameExists() *Error {
	return New(KindConflict, "project_name_exists", "Project with this name already exists")
}

func ErrInvalidTeam(missing []string) *Error {
	e := New(KindValidation, "invalid_team", "One or more assigned users do not exist or are not employees")
	for _, id := range missing {
		e.Fields = append(e.Fields, FieldError{Field: "team", Message: id})
	}
	return e
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrRateLimited(scope string) *Error {
	return WithMeta(New(KindRateLimited, "rate_limited", "Too many requests"), map[string]string{
		"scope": scope,
	})
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrRedisUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "redis_unavailable", "cache unavailable", cause)
}

func ErrNotificationFailed(cause error) *Error {
	return Wrap(KindInfrastructure, "notification_failed", "Failed to send email", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrRandomFailed(cause error) *Error {
	return Wrap(KindInternal, "random_failed", "random generation failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}

func ErrInvalidRole(role string) *Error {
	return WithMeta(New(KindValidation, "invalid_role", "invalid role"), map[string]string{
		"role": role,
	})
}
