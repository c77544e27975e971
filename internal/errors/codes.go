package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Transient reports whether an operation failing with this code may succeed
// on a later attempt. The command worker uses it to decide between a retry
// hint and a hard failure in its reply.
func (c Code) Transient() bool {
	switch c {
	case CodeUnavailable, CodeDeadlineExceeded, CodeCanceled:
		return true
	default:
		return false
	}
}
