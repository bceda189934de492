package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-staker/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeNotSupported     ErrorCode = "not_supported"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
)

// APIError represents a structured API error that carries error code and details.
// Ledger rejections use the ledger error code and name the offending item.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	ItemID  string    `json:"item_id,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewForbiddenError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

var ledgerMessages = map[domain.ErrorCode]string{
	domain.CodeWrongOwner:          "Caller does not own the item",
	domain.CodeTokenIsBurned:       "Item is burned",
	domain.CodeTokenIsMoved:        "Item left the staker since it was staked",
	domain.CodeAlreadyStaked:       "Item is already staked",
	domain.CodeNotEnoughFunds:      "Not enough funds in the reward pool",
	domain.CodeInvalidQueryRange:   "Invalid query range",
	domain.CodeContractsNotAllowed: "Contract accounts are not allowed",
}

// FromLedgerError maps a ledger rejection to its HTTP status and API error.
// ok is false when err is not a ledger rejection.
func FromLedgerError(err error) (status int, apiErr *APIError, ok bool) {
	if stderrors.Is(err, domain.ErrInvalidAmount) {
		return http.StatusUnprocessableEntity, NewValidationError(err.Error()), true
	}
	if stderrors.Is(err, domain.ErrDepositNotSupported) {
		return http.StatusConflict, &APIError{Code: ErrCodeNotSupported, Message: err.Error()}, true
	}

	le, isLedger := domain.AsLedgerError(err)
	if !isLedger {
		return 0, nil, false
	}

	apiErr = &APIError{
		Code:    ErrorCode(le.Code),
		Message: ledgerMessages[le.Code],
		ItemID:  le.ItemID.String(),
	}

	switch le.Code {
	case domain.CodeContractsNotAllowed:
		status = http.StatusForbidden
	case domain.CodeAlreadyStaked, domain.CodeNotEnoughFunds:
		status = http.StatusConflict
	default:
		status = http.StatusUnprocessableEntity
	}

	return status, apiErr, true
}
