package vtclient

import "fmt"

// Error represents a VT client protocol error.
type Error struct {
	// Type is the error kind.
	Type ErrorType

	// Message is a human-readable detail.
	Message string

	// State is the connection state active when the error occurred, or -1
	// if not applicable.
	State ConnectionState
}

// ErrorType categorizes VT client errors.
type ErrorType int

const (
	// ErrProtocolTimeout indicates no response arrived within the wait
	// window for a handshake step.
	ErrProtocolTimeout ErrorType = iota

	// ErrServerInsufficientMemory indicates get-memory-response denied the
	// upload request.
	ErrServerInsufficientMemory

	// ErrUploadAborted indicates a chunk fetch or transport completion
	// reported failure.
	ErrUploadAborted

	// ErrCommandRejected indicates submission to the network manager
	// failed.
	ErrCommandRejected

	// ErrServerUnsupportedFunction indicates the partner VT reported an
	// unsupported function (0xFD). Observational, never fatal.
	ErrServerUnsupportedFunction

	// ErrInvalidCallerInput indicates a documented constraint was
	// violated by the caller (e.g. zoom out of range).
	ErrInvalidCallerInput
)

func (e *Error) Error() string {
	if e.State >= 0 {
		return fmt.Sprintf("vtclient %s: %s (state: %s)", e.Type, e.Message, e.State)
	}
	return fmt.Sprintf("vtclient %s: %s", e.Type, e.Message)
}

func (t ErrorType) String() string {
	switch t {
	case ErrProtocolTimeout:
		return "protocol timeout"
	case ErrServerInsufficientMemory:
		return "server insufficient memory"
	case ErrUploadAborted:
		return "upload aborted"
	case ErrCommandRejected:
		return "command rejected"
	case ErrServerUnsupportedFunction:
		return "server unsupported function"
	case ErrInvalidCallerInput:
		return "invalid caller input"
	default:
		return "unknown error"
	}
}

// NewError creates a new VT client error with no associated state.
func NewError(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message, State: -1}
}

// NewStateError creates a new VT client error tagged with the state active
// when it occurred.
func NewStateError(errType ErrorType, message string, state ConnectionState) *Error {
	return &Error{Type: errType, Message: message, State: state}
}

// IsTimeout reports whether err is a protocol timeout error.
func IsTimeout(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrProtocolTimeout
	}
	return false
}

// IsUploadAborted reports whether err indicates an aborted upload.
func IsUploadAborted(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrUploadAborted
	}
	return false
}

// IsInvalidInput reports whether err indicates a caller input violation.
func IsInvalidInput(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrInvalidCallerInput
	}
	return false
}
