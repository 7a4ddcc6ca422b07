// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Codes for errors raised by the HTTP layer itself.
const (
	ErrCodeInvalidRequest = "API-010001"
	ErrCodeInvalidID      = "API-010002"
	ErrCodeInvalidDate    = "API-010003"
	ErrCodeRateLimited    = "API-020001"
)

// DateLayout is the format of calendar dates in requests and responses.
const DateLayout = "2006-01-02"
