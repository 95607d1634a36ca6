package apperror

// AppError is an error that carries the HTTP status code it should be
// rendered with, plus an optional underlying cause.
type AppError struct {
	Code    int    // HTTP status code (e.g., 404, 409)
	Message string // User-facing error message
	Err     error  // Underlying error, never exposed to the client
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates an AppError that wraps an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
