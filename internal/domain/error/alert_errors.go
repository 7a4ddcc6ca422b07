package error

import "errors"

// Alert delivery errors.
var (
	// ErrAlertQueueFailed is returned when an alert fails to be queued.
	ErrAlertQueueFailed = errors.New("failed to queue alert")

	// ErrInvalidAlertTemplate is returned when an alert kind has no template.
	ErrInvalidAlertTemplate = errors.New("invalid alert template")

	// ErrAlertJobNotFound is returned when an alert job is not found.
	ErrAlertJobNotFound = errors.New("alert job not found")

	// ErrNoOperatorRecipient is returned when alerts are queued without an operator address.
	ErrNoOperatorRecipient = errors.New("no operator email configured")
)

// AlertErrorCode defines error codes for alert errors.
// Format: ALR-XXYYYY where XX is category and YYYY is specific error.
type AlertErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeAlertQueueFailed AlertErrorCode = "ALR-010001"
	ErrCodeAlertJobNotFound AlertErrorCode = "ALR-010002"

	// Send errors (02XXXX)
	ErrCodePermanentAlertFailure AlertErrorCode = "ALR-020001"
	ErrCodeTemporaryAlertFailure AlertErrorCode = "ALR-020002"

	// Template errors (03XXXX)
	ErrCodeInvalidAlertTemplate AlertErrorCode = "ALR-030001"
	ErrCodeAlertRenderFailed    AlertErrorCode = "ALR-030002"
)

// AlertError represents an alert error with code and message.
type AlertError struct {
	Code    AlertErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AlertError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AlertError) Unwrap() error {
	return e.Err
}

// NewAlertError creates a new AlertError with the given code and message.
func NewAlertError(code AlertErrorCode, message string, err error) *AlertError {
	return &AlertError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
