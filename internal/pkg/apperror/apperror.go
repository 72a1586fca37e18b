package apperror

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
	Details any    // Optional structured payload rendered next to the message
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails returns a copy of a sentinel AppError carrying request specific details.
// The copy unwraps to the sentinel so errors.Is keeps working.
func WithDetails(base *AppError, message string, details any) *AppError {
	if message == "" {
		message = base.Message
	}
	return &AppError{
		Code:    base.Code,
		Message: message,
		Err:     base,
		Details: details,
	}
}
