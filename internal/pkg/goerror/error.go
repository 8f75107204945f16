package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels returned by repositories. Usecases translate them into *Error.
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource conflict")
)

// Type classifies errors into high-level buckets.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

var typeNames = map[Type]string{
	TypeServer:     "ERROR_TYPE_SERVER",
	TypeBusiness:   "ERROR_TYPE_BUSINESS",
	TypeValidation: "ERROR_TYPE_VALIDATION",
}

// String returns the string representation of the error type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "ERROR_TYPE_UNKNOWN"
}

// fallback is the Error() text when neither a cause nor a message is set.
func (t Type) fallback() string {
	switch t {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Logical business not meet with requirement"
	case TypeServer:
		return "Internal error"
	default:
		return "Unknown error"
	}
}

// Code is a stable identifier mapped to an HTTP status by StatusCode.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeUnavailable
)

var codeTable = map[Code]struct {
	name   string
	status int
}{
	CodeInternal:      {"ERROR_CODE_INTERNAL", http.StatusInternalServerError},
	CodeInvalidFormat: {"ERROR_CODE_INVALID_FORMAT", http.StatusBadRequest},
	CodeInvalidInput:  {"ERROR_CODE_INVALID_INPUT", http.StatusUnprocessableEntity},
	CodeNotFound:      {"ERROR_CODE_NOT_FOUND", http.StatusNotFound},
	CodeConflict:      {"ERROR_CODE_CONFLICT", http.StatusConflict},
	CodeUnavailable:   {"ERROR_CODE_UNAVAILABLE", http.StatusServiceUnavailable},
}

// String returns the string representation of the error code.
func (c Code) String() string {
	if entry, ok := codeTable[c]; ok {
		return entry.name
	}
	return codeTable[CodeInternal].name
}

// Error is the structured error returned by usecases. It optionally wraps a
// cause and carries a user-facing message plus a field to message map for
// validation failures.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

// Error implements the error interface. The cause wins over the message so
// logs keep the root failure.
func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.msg != "":
		return e.msg
	default:
		return e.errType.fallback()
	}
}

// String returns a verbose representation for logging.
func (e *Error) String() string {
	return fmt.Sprintf("Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType, e.code, e.msg, e.err)
}

// Msg returns the user-facing message.
func (e *Error) Msg() string { return e.msg }

// Type returns the high-level error type.
func (e *Error) Type() Type { return e.errType }

// Code returns the stable error code.
func (e *Error) Code() Code { return e.code }

// Fields returns the field to message map of a validation failure, if any.
func (e *Error) Fields() map[string]string { return e.fields }

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	if entry, ok := codeTable[e.code]; ok {
		return entry.status
	}
	return http.StatusInternalServerError
}

const (
	msgServer        = "Internal server error"
	msgValidation    = "Validation error"
	msgInvalidFormat = "Invalid request body"
)

// NewServer wraps an unexpected failure; its message never leaks err.
func NewServer(err error) error {
	return &Error{err: err, msg: msgServer, errType: TypeServer, code: CodeInternal}
}

// NewBusiness reports a rule violation such as a missing or duplicate aquarium.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewInvalidInput creates a validation error for invalid input.
//
// When err is nil the remaining arguments are read as field/message pairs and
// exposed through Fields; an odd count is treated as a malformed request.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return &Error{err: err, msg: msgValidation, errType: TypeValidation, code: CodeInvalidInput}
	}
	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}

	fields := make(map[string]string, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}
	return NewInvalidFields(fields)
}

// NewInvalidFields creates a validation error from a field to message map.
func NewInvalidFields(fields map[string]string) error {
	return &Error{msg: msgValidation, errType: TypeValidation, code: CodeInvalidInput, fields: fields}
}

// NewInvalidFormat reports a request that could not be understood. The first
// msg, when given, replaces the default message.
func NewInvalidFormat(msg ...string) error {
	m := msgInvalidFormat
	if len(msg) > 0 {
		m = msg[0]
	}
	return &Error{msg: m, errType: TypeValidation, code: CodeInvalidFormat}
}
