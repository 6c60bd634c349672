package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
	// ErrCodeValidationLength is used when a value violates length limits
	ErrCodeValidationLength = "ERR_VALIDATION_LENGTH"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeInvalidCredentials is used when login credentials do not match
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	// ErrCodeAccountLocked is used when the account is locked after failed logins
	ErrCodeAccountLocked = "ERR_ACCOUNT_LOCKED"
	// ErrCodeAccountDeactivated is used when the account has been deactivated
	ErrCodeAccountDeactivated = "ERR_ACCOUNT_DEACTIVATED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeBookingConflict is used when a slot already has an overlapping booking
	ErrCodeBookingConflict = "ERR_BOOKING_CONFLICT"
	// ErrCodeReservationExpired is used when the reservation grace period has passed
	ErrCodeReservationExpired = "ERR_RESERVATION_EXPIRED"
	// ErrCodeAlreadyPaid is used when a booking fee has already been settled
	ErrCodeAlreadyPaid = "ERR_ALREADY_PAID"
	// ErrCodePaymentTokenInvalid is used when a payment confirmation token fails verification
	ErrCodePaymentTokenInvalid = "ERR_PAYMENT_TOKEN_INVALID"
	// ErrCodePaymentTokenExpired is used when a payment confirmation token has expired
	ErrCodePaymentTokenExpired = "ERR_PAYMENT_TOKEN_EXPIRED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeAccountLocked:      http.StatusForbidden,
	ErrCodeAccountDeactivated: http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:        http.StatusUnprocessableEntity,
	ErrCodeBookingConflict:     http.StatusConflict,
	ErrCodeReservationExpired:  http.StatusUnprocessableEntity,
	ErrCodeAlreadyPaid:         http.StatusUnprocessableEntity,
	ErrCodePaymentTokenInvalid: http.StatusUnprocessableEntity,
	ErrCodePaymentTokenExpired: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized codes
// carried on the wire
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,

	// Account lifecycle
	"INVALID_CREDENTIALS": ErrCodeInvalidCredentials,
	"ACCOUNT_LOCKED":      ErrCodeAccountLocked,
	"ACCOUNT_DEACTIVATED": ErrCodeAccountDeactivated,
	"ACCOUNT_INACTIVE":    ErrCodeAccountDeactivated,
	"USER_DEACTIVATED":    ErrCodeAccountDeactivated,
	"USER_NOT_FOUND":      ErrCodeNotFound,
	"PASSWORD_HASH_ERROR": ErrCodeInternal,
	"TOKEN_EXPIRED":       ErrCodeTokenExpired,
	"TOKEN_INVALID":       ErrCodeTokenInvalid,
	"USERNAME_TAKEN":      ErrCodeAlreadyExists,
	"EMAIL_TAKEN":         ErrCodeAlreadyExists,
	"PASSWORD_MISMATCH":   ErrCodeInvalidCredentials,
	"WEAK_PASSWORD":       ErrCodeValidation,

	// Registration and entity field validation
	"INVALID_USERNAME":       ErrCodeValidation,
	"INVALID_EMAIL":          ErrCodeValidation,
	"INVALID_PASSWORD":       ErrCodeValidation,
	"INVALID_NAME":           ErrCodeValidation,
	"INVALID_MESSAGE":        ErrCodeValidation,
	"INVALID_RATING":         ErrCodeValidationRange,
	"INVALID_GOAL":           ErrCodeValidation,
	"INVALID_AREA_NAME":      ErrCodeValidation,
	"INVALID_AREA_ID":        ErrCodeValidation,
	"INVALID_SUB_AREA_ID":    ErrCodeValidation,
	"INVALID_SLOT_NUMBER":    ErrCodeValidation,
	"INVALID_SLOT_TYPE":      ErrCodeValidation,
	"INVALID_USER_ID":        ErrCodeValidation,
	"INVALID_SLOT_ID":        ErrCodeValidation,
	"INVALID_VEHICLE_TYPE":   ErrCodeValidation,
	"INVALID_VEHICLE_NUMBER": ErrCodeValidation,
	"INVALID_START_TIME":     ErrCodeValidationRange,
	"INVALID_END_TIME":       ErrCodeValidationRange,
	"INVALID_EXPORT_ENTITY":  ErrCodeBadRequest,

	// Booking lifecycle
	"ALREADY_ACTIVE":        ErrCodeInvalidState,
	"ALREADY_DEACTIVATED":   ErrCodeInvalidState,
	"NOT_LOCKED":            ErrCodeInvalidState,
	"BOOKING_CONFLICT":      ErrCodeBookingConflict,
	"SLOT_NUMBER_TAKEN":     ErrCodeAlreadyExists,
	"SLOT_UNAVAILABLE":      ErrCodeBookingConflict,
	"RESERVATION_EXPIRED":   ErrCodeReservationExpired,
	"ALREADY_PAID":          ErrCodeAlreadyPaid,
	"PAYMENT_TOKEN_INVALID": ErrCodePaymentTokenInvalid,
	"PAYMENT_TOKEN_EXPIRED": ErrCodePaymentTokenExpired,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
