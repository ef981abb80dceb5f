package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAccountNotFound    = errors.New("user not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrDuplicateAccount   = errors.New("user already exists with this email")
	ErrDuplicateEmployee  = errors.New("employee with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrTokenMissing       = errors.New("no token, authorization denied")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidOTP         = errors.New("invalid or expired verification code")
)

// ValidationError carries one human readable message per offending field.
type ValidationError struct {
	Errors []string
}

func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Errors: msgs}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, ", ")
}

// DuplicateKeyError reports a unique constraint violation on Field.
type DuplicateKeyError struct {
	Entity string
	Field  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
}

// EmployeeProvisioningError is returned by registration when the linked employee
// record could not be stored and the account has been rolled back.
type EmployeeProvisioningError struct {
	Cause error
}

func (e *EmployeeProvisioningError) Error() string {
	return "employee registration failed: " + e.Cause.Error()
}

func (e *EmployeeProvisioningError) Unwrap() error {
	return e.Cause
}
