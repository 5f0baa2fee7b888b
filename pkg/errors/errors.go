package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Domain error conditions. Every public operation either completes or reports
// exactly one of these.

func NotAuthenticated(err error) *AppError {
	return &AppError{
		Code:    "NOT_AUTHENTICATED",
		Message: "A signed-in user is required",
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func NoHandle() *AppError {
	return &AppError{
		Code:    "NO_HANDLE",
		Message: "Pick a username before commenting",
		Status:  http.StatusForbidden,
	}
}

func EmptyText() *AppError {
	return &AppError{
		Code:    "EMPTY_TEXT",
		Message: "Comment text must not be empty",
		Status:  http.StatusBadRequest,
	}
}

func TooShort(min int) *AppError {
	return &AppError{
		Code:    "TOO_SHORT",
		Message: fmt.Sprintf("Username must be at least %d characters", min),
		Status:  http.StatusBadRequest,
	}
}

func TooLong(max int) *AppError {
	return &AppError{
		Code:    "TOO_LONG",
		Message: fmt.Sprintf("Username must be at most %d characters", max),
		Status:  http.StatusBadRequest,
	}
}

func MissingPrimaryMedia() *AppError {
	return &AppError{
		Code:    "MISSING_PRIMARY_MEDIA",
		Message: "A primary image is required",
		Status:  http.StatusBadRequest,
	}
}

func HandleTaken() *AppError {
	return &AppError{
		Code:    "HANDLE_TAKEN",
		Message: "That username is already taken",
		Status:  http.StatusConflict,
	}
}

func ProfileMissing(err error) *AppError {
	return &AppError{
		Code:    "PROFILE_MISSING",
		Message: "User profile does not exist",
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func UploadFailed(err error) *AppError {
	return &AppError{
		Code:    "UPLOAD_FAILED",
		Message: "Media upload failed",
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

func WriteFailed(message string, err error) *AppError {
	return &AppError{
		Code:    "WRITE_FAILED",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
