package error

import "errors"

// Audit domain errors.
var (
	// ErrAuditWriteFailure is reported when a timeline event could not be built or stored.
	// It is never returned to the caller of the audited mutation.
	ErrAuditWriteFailure = errors.New("failed to write timeline event")

	// ErrInvalidEntityKind is returned when a mutation is recorded for an unknown entity kind.
	ErrInvalidEntityKind = errors.New("invalid entity kind")

	// ErrInvalidAuditAction is returned when a mutation is recorded with an unknown action.
	ErrInvalidAuditAction = errors.New("invalid audit action")
)

// AuditErrorCode defines error codes for audit errors.
// Format: AUD-XXYYYY where XX is category and YYYY is specific error.
type AuditErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidEntityKind  AuditErrorCode = "AUD-010001"
	ErrCodeMissingAuditFields AuditErrorCode = "AUD-010002"
	ErrCodeInvalidAuditAction AuditErrorCode = "AUD-010003"

	// Side-channel failures (03XXXX)
	ErrCodeAuditWriteFailure AuditErrorCode = "AUD-030001"
)

// AuditError represents an audit error with code and message.
type AuditError struct {
	Code    AuditErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuditError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuditError) Unwrap() error {
	return e.Err
}

// NewAuditError creates a new AuditError with the given code and message.
func NewAuditError(code AuditErrorCode, message string, err error) *AuditError {
	return &AuditError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
