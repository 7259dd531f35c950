package utils

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeInvalidVideoReference ErrorCode = "INVALID_VIDEO_REFERENCE"
	ErrorCodeValidationError       ErrorCode = "VALIDATION_ERROR"
	ErrorCodeProbeFailed           ErrorCode = "PROBE_FAILED"
	ErrorCodeAuthRequired          ErrorCode = "AUTH_REQUIRED"
	ErrorCodeDownloadFailed        ErrorCode = "DOWNLOAD_FAILED"
	ErrorCodeRateLimitExceeded     ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeInternalError         ErrorCode = "INTERNAL_ERROR"
)

// AuthRequiredMessage tells the operator how to supply YouTube credentials.
const AuthRequiredMessage = "YouTube requires authentication. Configure yt-dlp cookies (set YT_DLP_COOKIES_FROM_BROWSER or YT_DLP_COOKIES_FILE)."

type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func NewErrorWithDetails(code ErrorCode, message string, statusCode int, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

func NewValidationError(message string, details map[string]interface{}) *AppError {
	return NewErrorWithDetails(ErrorCodeValidationError, message, http.StatusBadRequest, details)
}

func NewMissingParameterError(name string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeValidationError,
		fmt.Sprintf("Missing required parameter: %s", name),
		http.StatusBadRequest,
		map[string]interface{}{
			"parameter": name,
		},
	)
}

func NewInvalidVideoReferenceError(reference string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeInvalidVideoReference,
		"The provided value is not a YouTube URL or video ID",
		http.StatusBadRequest,
		map[string]interface{}{
			"expected_format": "https://www.youtube.com/watch?v=<11-character id>",
			"provided":        reference,
		},
	)
}

func NewProbeError() *AppError {
	return NewError(
		ErrorCodeProbeFailed,
		"Failed to fetch video formats",
		http.StatusInternalServerError,
	)
}

func NewAuthRequiredError() *AppError {
	return NewError(
		ErrorCodeAuthRequired,
		AuthRequiredMessage,
		http.StatusForbidden,
	)
}

func NewDownloadError(attempts int) *AppError {
	return NewErrorWithDetails(
		ErrorCodeDownloadFailed,
		"Download failed",
		http.StatusInternalServerError,
		map[string]interface{}{
			"attempts": attempts,
		},
	)
}

func NewRateLimitError() *AppError {
	return NewError(
		ErrorCodeRateLimitExceeded,
		"Too many requests",
		http.StatusTooManyRequests,
	)
}

func NewInternalError() *AppError {
	return NewError(
		ErrorCodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
}
