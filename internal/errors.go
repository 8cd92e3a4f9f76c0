package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidName      ErrorCode = "INVALID_NAME"
	ErrCodeInvalidRating    ErrorCode = "INVALID_RATING"
	ErrCodeInvalidSlug      ErrorCode = "INVALID_SLUG"

	ErrCodeSerialNotFound    ErrorCode = "SERIAL_NOT_FOUND"
	ErrCodeReferenceNotFound ErrorCode = "REFERENCE_NOT_FOUND"
	ErrCodeMarketNotFound    ErrorCode = "MARKET_NOT_FOUND"
	ErrCodeMarketRequired    ErrorCode = "MARKET_REQUIRED"
	ErrCodeUserNotFound      ErrorCode = "USER_NOT_FOUND"

	ErrCodeDuplicateBarcode ErrorCode = "DUPLICATE_BARCODE"
	ErrCodeDuplicateSlug    ErrorCode = "DUPLICATE_SLUG"
	ErrCodeDuplicateUser    ErrorCode = "DUPLICATE_USER"

	ErrCodePermissionDenied   ErrorCode = "PERMISSION_DENIED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewSerialNotFoundError reports that no entity of the given kind carries the
// requested serial in the active market.
func NewSerialNotFoundError(kind string, serial int64) *AppError {
	return NewNotFoundError(
		fmt.Sprintf("no %s with serial %d", kind, serial),
		ErrCodeSerialNotFound,
	).WithDetails(map[string]interface{}{"kind": kind, "serial": serial})
}

// NewReferenceNotFoundError reports a dangling foreign reference supplied by
// the caller, e.g. a product pointing at a category serial that does not
// exist in the active market.
func NewReferenceNotFoundError(kind string, serial int64) *AppError {
	return NewValidationError(
		fmt.Sprintf("referenced %s with serial %d does not exist", kind, serial),
		ErrCodeReferenceNotFound,
	).WithDetails(map[string]interface{}{"kind": kind, "serial": serial})
}

func NewDuplicateBarcodeError(barcode string) *AppError {
	return NewConflictError(
		fmt.Sprintf("barcode %q is already registered", barcode),
		ErrCodeDuplicateBarcode,
	).WithDetails(map[string]interface{}{"barcode": barcode})
}

func NewPermissionDeniedError(permission string) *AppError {
	return NewForbiddenError(
		fmt.Sprintf("missing permission %s", permission),
		ErrCodePermissionDenied,
	).WithDetails(map[string]interface{}{"permission": permission})
}

var (
	ErrMarketRequired = NewValidationError("no active market selected", ErrCodeMarketRequired)
	ErrMarketNotFound = NewNotFoundError("market not found", ErrCodeMarketNotFound)
	ErrUserNotFound   = NewNotFoundError("user not found", ErrCodeUserNotFound)

	ErrInvalidCredentials = NewUnauthorizedError("invalid username or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("user account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
