package error

import (
	"errors"
	"fmt"
)

// Ledger domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransaction is returned when transaction fields fail validation.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrOrphanedPaidInstallment marks a paid installment kept beyond the current installment count.
	ErrOrphanedPaidInstallment = errors.New("paid installment beyond installment count")

	// ErrLedgerDesync marks an installment whose linked transaction disagreed on payment status.
	ErrLedgerDesync = errors.New("installment and transaction disagree on status")

	// ErrDuplicateInstallmentTransaction marks extra transactions linked to the same installment.
	ErrDuplicateInstallmentTransaction = errors.New("more than one transaction linked to installment")

	// ErrInvalidGranularity is returned when a cash-flow projection uses an unknown bucket size.
	ErrInvalidGranularity = errors.New("invalid granularity")

	// ErrLockUnavailable is returned when a project lock could not be acquired in time.
	ErrLockUnavailable = errors.New("project is being modified by another request")
)

// LedgerErrorCode defines error codes for ledger errors and warnings.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTransactionNotFound   LedgerErrorCode = "LDG-010001"
	ErrCodeInvalidTransaction    LedgerErrorCode = "LDG-010002"
	ErrCodeInvalidAmount         LedgerErrorCode = "LDG-010003"
	ErrCodeInvalidStatus         LedgerErrorCode = "LDG-010004"
	ErrCodeInstallmentLinkLocked LedgerErrorCode = "LDG-010005"
	ErrCodeDescriptionTooLong    LedgerErrorCode = "LDG-010006"
	ErrCodeInvalidDate           LedgerErrorCode = "LDG-010007"
	ErrCodeInvalidGranularity    LedgerErrorCode = "LDG-010008"

	// Warnings (02XXXX), never block the operation
	ErrCodeOrphanedPaidInstallment LedgerErrorCode = "LDG-020001"
	ErrCodeLedgerDesync            LedgerErrorCode = "LDG-020002"
	ErrCodeDuplicateTransaction    LedgerErrorCode = "LDG-020003"
	ErrCodeScheduleDrift           LedgerErrorCode = "LDG-020004"
)

// LedgerError represents a ledger error or warning with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewOrphanedPaidInstallmentWarning reports a paid installment retained beyond the installment count.
func NewOrphanedPaidInstallmentWarning(number, count int) *LedgerError {
	return NewLedgerError(
		ErrCodeOrphanedPaidInstallment,
		fmt.Sprintf("installment %d is paid but the schedule now has %d installments", number, count),
		ErrOrphanedPaidInstallment,
	)
}

// NewLedgerDesyncWarning reports an installment whose status was overridden by its transaction.
func NewLedgerDesyncWarning(number int, installmentStatus, transactionStatus string) *LedgerError {
	return NewLedgerError(
		ErrCodeLedgerDesync,
		fmt.Sprintf("installment %d was %s but its transaction is %s", number, installmentStatus, transactionStatus),
		ErrLedgerDesync,
	)
}
