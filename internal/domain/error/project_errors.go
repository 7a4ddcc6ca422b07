// Package error defines domain-specific errors for the project ledger.
package error

import "errors"

// Project domain errors.
var (
	// ErrInvalidBudget is returned when a schedule is requested for a budget that is not positive.
	ErrInvalidBudget = errors.New("budget must be greater than zero")

	// ErrInvalidInstallmentCount is returned when the installment count is out of range.
	ErrInvalidInstallmentCount = errors.New("invalid installment count")

	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrProjectNotFound is returned when a project is not found in the system.
	ErrProjectNotFound = errors.New("project not found")

	// ErrInstallmentNotFound is returned when a project has no installment with the given number.
	ErrInstallmentNotFound = errors.New("installment not found")

	// ErrProjectMissingFields is returned when required project fields are missing.
	ErrProjectMissingFields = errors.New("missing required fields")
)

// ProjectErrorCode defines error codes for project errors.
// Format: PRJ-XXYYYY where XX is category and YYYY is specific error.
type ProjectErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudget           ProjectErrorCode = "PRJ-010001"
	ErrCodeInvalidInstallmentCount ProjectErrorCode = "PRJ-010002"
	ErrCodeInvalidPaymentMethod    ProjectErrorCode = "PRJ-010003"
	ErrCodeProjectNotFound         ProjectErrorCode = "PRJ-010004"
	ErrCodeInstallmentNotFound     ProjectErrorCode = "PRJ-010005"
	ErrCodeMissingProjectFields    ProjectErrorCode = "PRJ-010006"
	ErrCodeInvalidAnchorDate       ProjectErrorCode = "PRJ-010007"

	// Concurrency errors (02XXXX)
	ErrCodeProjectBusy ProjectErrorCode = "PRJ-020001"
)

// ProjectError represents a project error with code and message.
type ProjectError struct {
	Code    ProjectErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProjectError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProjectError) Unwrap() error {
	return e.Err
}

// NewProjectError creates a new ProjectError with the given code and message.
func NewProjectError(code ProjectErrorCode, message string, err error) *ProjectError {
	return &ProjectError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
