package apperrors

import "errors"

// Error kinds surfaced by the institution directory
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal error")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")
)

// ConflictField names an input attribute that collided with an existing record
type ConflictField struct {
	Field string `json:"field"`
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Fields  []ConflictField
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewInvalidRequestError creates a new custom error for malformed or missing input
func NewInvalidRequestError(message string) error {
	return NewCustomError(ErrInvalidRequest, message)
}

// NewNotFoundError creates a new custom error for resource not found with a message
func NewNotFoundError(message string) error {
	return NewCustomError(ErrNotFound, message)
}

// NewConflictError creates a conflict error listing every colliding field.
func NewConflictError(message string, fields ...ConflictField) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
		Fields:  fields,
	}
}

// NewInternalError creates a generic internal error. The cause is kept for
// logging but never rendered to the caller.
func NewInternalError(message string, cause error) error {
	return &CustomError{
		Err:     errors.Join(ErrInternal, cause),
		Message: message,
	}
}

// ConflictFields returns the field list carried by a conflict error, if any.
func ConflictFields(err error) []ConflictField {
	var ce *CustomError
	if errors.As(err, &ce) && errors.Is(ce.Err, ErrConflict) {
		return ce.Fields
	}
	return nil
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsDomain reports whether err is one of the kinds that callers see verbatim.
func IsDomain(err error) bool {
	return Is(err, ErrInvalidRequest, ErrNotFound, ErrConflict)
}
