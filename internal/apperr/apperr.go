package apperr

import "fmt"

// Error codes
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
	CodeBadRequest = "BAD_REQUEST"
	CodeLocked     = "CATEGORY_LOCKED"
)

// AppError is an application error carrying an HTTP status and error code.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFound creates a NOT_FOUND error.
func NewNotFound(resource string, id any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidation creates a VALIDATION_ERROR.
func NewValidation(field string, reason string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternal creates an INTERNAL_ERROR wrapping err.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequest creates a BAD_REQUEST error.
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewLocked creates a CATEGORY_LOCKED error for gated categories.
func NewLocked(categoryID string) *AppError {
	return &AppError{
		Code:    CodeLocked,
		Message: fmt.Sprintf("category is locked: %s", categoryID),
		Status:  403,
	}
}
