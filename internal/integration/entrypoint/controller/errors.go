package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
	"github.com/arquitetura-app/backend/internal/domain/valueobject"
	"github.com/arquitetura-app/backend/internal/integration/entrypoint/dto"
)

// handleError maps domain errors to HTTP responses. Anything unrecognised is
// logged and reported as an internal error.
func handleError(ctx *gin.Context, err error) {
	var projectErr *domainerror.ProjectError
	if errors.As(err, &projectErr) {
		ctx.JSON(statusForProjectError(projectErr.Code), dto.ErrorResponse{
			Error: projectErr.Message,
			Code:  string(projectErr.Code),
		})
		return
	}

	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		ctx.JSON(statusForLedgerError(ledgerErr.Code), dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	var auditErr *domainerror.AuditError
	if errors.As(err, &auditErr) {
		ctx.JSON(statusForAuditError(auditErr.Code), dto.ErrorResponse{
			Error: auditErr.Message,
			Code:  string(auditErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrLockUnavailable) {
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: "Project is being modified by another request, try again",
			Code:  string(domainerror.ErrCodeProjectBusy),
		})
		return
	}

	slog.Error("Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusForProjectError maps project error codes to HTTP status codes.
func statusForProjectError(code domainerror.ProjectErrorCode) int {
	switch code {
	case domainerror.ErrCodeProjectNotFound,
		domainerror.ErrCodeInstallmentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidBudget,
		domainerror.ErrCodeInvalidInstallmentCount,
		domainerror.ErrCodeInvalidPaymentMethod,
		domainerror.ErrCodeMissingProjectFields,
		domainerror.ErrCodeInvalidAnchorDate:
		return http.StatusBadRequest
	case domainerror.ErrCodeProjectBusy:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// statusForLedgerError maps ledger error codes to HTTP status codes.
func statusForLedgerError(code domainerror.LedgerErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransaction,
		domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeInvalidStatus,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeInvalidDate,
		domainerror.ErrCodeInvalidGranularity:
		return http.StatusBadRequest
	case domainerror.ErrCodeInstallmentLinkLocked:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// statusForAuditError maps audit error codes to HTTP status codes.
func statusForAuditError(code domainerror.AuditErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidEntityKind,
		domainerror.ErrCodeMissingAuditFields,
		domainerror.ErrCodeInvalidAuditAction:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(ctx *gin.Context, code, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// parseIDParam reads a UUID path parameter, answering 400 when it is malformed.
func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		badRequest(ctx, dto.ErrCodeInvalidID, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// parseDate parses a calendar date as midnight UTC.
func parseDate(value string) (time.Time, error) {
	return valueobject.ParseDate(value)
}

// parseOptionalDate parses a nullable calendar date field.
func parseOptionalDate(ctx *gin.Context, field string, value *string) (*time.Time, bool) {
	if value == nil {
		return nil, true
	}
	date, err := parseDate(*value)
	if err != nil {
		badRequest(ctx, dto.ErrCodeInvalidDate, "Invalid "+field+" format. Use YYYY-MM-DD")
		return nil, false
	}
	return &date, true
}

// parseDateQuery reads an optional date query parameter. Timestamps in
// RFC 3339 are accepted besides plain dates.
func parseDateQuery(ctx *gin.Context, name string) (*time.Time, bool) {
	value := ctx.Query(name)
	if value == "" {
		return nil, true
	}
	if date, err := parseDate(value); err == nil {
		return &date, true
	}
	instant, err := time.Parse(time.RFC3339, value)
	if err != nil {
		badRequest(ctx, dto.ErrCodeInvalidDate, "Invalid "+name+" format. Use YYYY-MM-DD or RFC 3339")
		return nil, false
	}
	instant = instant.UTC()
	return &instant, true
}

// parseIntQuery reads an optional integer query parameter.
func parseIntQuery(ctx *gin.Context, name string) (*int, bool) {
	value := ctx.Query(name)
	if value == "" {
		return nil, true
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		badRequest(ctx, dto.ErrCodeInvalidRequest, "Invalid "+name+": must be an integer")
		return nil, false
	}
	return &n, true
}

// parseUUIDQuery reads an optional UUID query parameter.
func parseUUIDQuery(ctx *gin.Context, name string) (*uuid.UUID, bool) {
	value := ctx.Query(name)
	if value == "" {
		return nil, true
	}
	id, err := uuid.Parse(value)
	if err != nil {
		badRequest(ctx, dto.ErrCodeInvalidID, "Invalid "+name+" format")
		return nil, false
	}
	return &id, true
}
