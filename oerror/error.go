package oerror

import "fmt"

var (
	// ErrInvalidBounces is returned when a controller is configured without a usable bounce cap.
	ErrInvalidBounces = NewError("max bounces must be at least 1")
	// ErrInvalidShape is returned when the agent collider has no usable dimensions.
	ErrInvalidShape = NewError("collider shape is invalid")
	// ErrInvalidSettings is returned for any other rejected movement setting.
	ErrInvalidSettings = NewError("movement settings are invalid")
	// ErrMalformedSnapshot is returned when replicated state cannot be decoded.
	ErrMalformedSnapshot = NewError("malformed snapshot")
	// ErrInvalidConfig is returned when a configuration file describes an unusable simulation.
	ErrInvalidConfig = NewError("invalid configuration")
)

type Error struct {
	Err string
}

func NewError(err string) *Error {
	return &Error{Err: err}
}

// New formats a new error with the given format and arguments.
func New(format string, args ...any) *Error {
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}
