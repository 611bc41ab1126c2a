package models

import "fmt"

// Error codes used in status responses and internal error handling.
const (
	ErrCodeNavigation   = "NAVIGATION_FAILED"
	ErrCodeTimeout      = "WALK_TIMEOUT"
	ErrCodeBrowserCrash = "BROWSER_CRASH"
	ErrCodeContent      = "CONTENT_MISSING"
	ErrCodeSeedInput    = "SEED_INPUT"
	ErrCodeTelemetry    = "TELEMETRY"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// WalkError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type WalkError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *WalkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// NewWalkError creates a new WalkError.
func NewWalkError(code, message string, err error) *WalkError {
	return &WalkError{Code: code, Message: message, Err: err}
}
