package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest       = 4001
	CodeInvalidTransaction   = 4002
	CodeInvalidUserID        = 4003
	CodeDuplicateTransaction = 4004
	CodeConstraintViolation  = 4005
	CodeDuplicateUser        = 4006
	CodeInvalidToken         = 4030
	CodeUserNotFound         = 4040
	CodeTransactionNotFound  = 4041

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeDatabaseConnection = 5001
	CodeIntegrity          = 5002
	CodeGateway            = 5020
)

// Base error types
var (
	// ErrInvalidRequest is returned when inbound data has an unexpected shape
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidTransaction is returned when transaction data fails entity validation
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrInvalidTransactionID is returned when the order identifier is empty or too long
	ErrInvalidTransactionID = errors.New("transaction ID must be between 1 and 36 characters")

	// ErrInvalidPaymentID is returned when the gateway payment identifier is empty or too long
	ErrInvalidPaymentID = errors.New("payment ID must be between 1 and 20 characters")

	// ErrInvalidAmount is returned when the amount is negative
	ErrInvalidAmount = errors.New("amount cannot be negative")

	// ErrInvalidStatus is returned when the transaction status is empty or too long
	ErrInvalidStatus = errors.New("transaction status must be between 1 and 20 characters")

	// ErrInvalidUserID is returned when the user identifier is missing
	ErrInvalidUserID = errors.New("user ID is required")

	// ErrInvalidToken is returned when a signed payload does not match its token
	ErrInvalidToken = errors.New("invalid request token")

	// ErrDuplicateTransaction is returned when a transaction with the same ID already exists
	ErrDuplicateTransaction = errors.New("transaction with this ID already exists")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when the store cannot serve a request
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrIntegrity is returned when an authenticated callback cannot be applied to stored state
	ErrIntegrity = errors.New("data integrity violation")

	// ErrGateway is returned when a payment gateway call fails or answers with an invalid body
	ErrGateway = errors.New("payment gateway error")

	// ErrNoKeepStatuses is returned when an expiry query would not protect any status
	ErrNoKeepStatuses = errors.New("at least one status must be kept from expiry")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	// Wrapper kinds first: they may carry a more specific cause
	case errors.Is(err, ErrIntegrity):
		return CodeIntegrity
	case errors.Is(err, ErrGateway):
		return CodeGateway
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidTransaction),
		errors.Is(err, ErrInvalidTransactionID),
		errors.Is(err, ErrInvalidPaymentID),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidStatus):
		return CodeInvalidTransaction
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrInvalidToken):
		return CodeInvalidToken
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternalServer
	}
}

// ValidationError describes inbound data that failed schema validation
type ValidationError struct {
	Source string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Source, e.Reason)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrInvalidRequest
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "validation_error",
		"source":     e.Source,
		"reason":     e.Reason,
		"error_code": CodeInvalidRequest,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewValidationError creates a validation error for the named input
func NewValidationError(source, reason string, err error) error {
	return &ValidationError{
		Source: source,
		Reason: reason,
		Err:    err,
	}
}

// AuthenticationError is a token mismatch on a signed inbound request
type AuthenticationError struct {
	OrderID   string
	PaymentID string
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("token verification failed for order %s (payment %s)", e.OrderID, e.PaymentID)
}

// Is checks if the target error is an ErrInvalidToken
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrInvalidToken
}

// LogFields returns a map of fields for structured logging
func (e *AuthenticationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "authentication_error",
		"order_id":   e.OrderID,
		"payment_id": e.PaymentID,
		"error_code": CodeInvalidToken,
	}
}

// NewAuthenticationError creates an authentication error for a notification
func NewAuthenticationError(orderID, paymentID string) error {
	return &AuthenticationError{
		OrderID:   orderID,
		PaymentID: paymentID,
	}
}

// GatewayError carries the details of a failed payment gateway call
type GatewayError struct {
	Operation  string
	StatusCode int
	ErrorCode  string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("gateway %s failed", e.Operation)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (http %d)", e.StatusCode)
	}
	if e.ErrorCode != "" {
		msg += fmt.Sprintf(" [code %s]", e.ErrorCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrGateway
func (e *GatewayError) Is(target error) bool {
	return target == ErrGateway
}

// LogFields returns a map of fields for structured logging
func (e *GatewayError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":    "gateway_error",
		"operation":     e.Operation,
		"status_code":   e.StatusCode,
		"gateway_code":  e.ErrorCode,
		"gateway_error": e.Message,
		"error_code":    CodeGateway,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewGatewayError creates a gateway error for the given operation
func NewGatewayError(operation string, statusCode int, gatewayCode, message string, err error) error {
	return &GatewayError{
		Operation:  operation,
		StatusCode: statusCode,
		ErrorCode:  gatewayCode,
		Message:    message,
		Err:        err,
	}
}

// IntegrityError reports an authenticated callback that could not be applied
type IntegrityError struct {
	TransactionID string
	Err           error
}

// Error implements the error interface
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("authenticated notification for transaction %s could not be applied: %v",
		e.TransactionID, e.Err)
}

// Unwrap returns the underlying error
func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrIntegrity
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// LogFields returns a map of fields for structured logging
func (e *IntegrityError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":     "integrity_error",
		"transaction_id": e.TransactionID,
		"error_code":     CodeIntegrity,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewIntegrityError creates an integrity error for the given transaction
func NewIntegrityError(transactionID string, err error) error {
	return &IntegrityError{
		TransactionID: transactionID,
		Err:           err,
	}
}

// DuplicateTransactionError provides detailed information about duplicate transaction attempts
type DuplicateTransactionError struct {
	TransactionID string
	UserID        string
}

// Error implements the error interface
func (e *DuplicateTransactionError) Error() string {
	return fmt.Sprintf("duplicate transaction detected: transactionID=%s for user %s",
		e.TransactionID, e.UserID)
}

// Is checks if the target error is an ErrDuplicateTransaction
func (e *DuplicateTransactionError) Is(target error) bool {
	return target == ErrDuplicateTransaction
}

// LogFields returns a map of fields for structured logging
func (e *DuplicateTransactionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "duplicate_transaction",
		"transaction_id": e.TransactionID,
		"user_id":        e.UserID,
		"error_code":     CodeDuplicateTransaction,
	}
}

// NewDuplicateTransactionError creates a new detailed duplicate transaction error
func NewDuplicateTransactionError(transactionID, userID string) error {
	return &DuplicateTransactionError{
		TransactionID: transactionID,
		UserID:        userID,
	}
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsAuthenticationError checks if the error is a token verification failure
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

// IsGatewayError checks if the error came from the payment gateway
func IsGatewayError(err error) bool {
	return errors.Is(err, ErrGateway)
}

// IsIntegrityError checks if the error is a data integrity violation
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrIntegrity)
}

// IsStoreError checks if the error is a database failure
func IsStoreError(err error) bool {
	return errors.Is(err, ErrDatabaseConnection)
}

// IsDuplicateTransactionError checks if the error is a duplicate transaction error
func IsDuplicateTransactionError(err error) bool {
	return errors.Is(err, ErrDuplicateTransaction)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}
