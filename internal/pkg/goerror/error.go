// Package goerror defines the structured error used between usecases and
// the transport layer.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned by adapters when a lookup matches nothing.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned by adapters when a write violates uniqueness.
	ErrConflict = errors.New("resource conflict")
)

// Type groups errors by who is at fault.
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

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "ERROR_TYPE_UNKNOWN"
}

// Code selects the HTTP status of an Error.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeUnauthorized
)

var codes = map[Code]struct {
	name   string
	status int
}{
	CodeInternal:      {"ERROR_CODE_INTERNAL", http.StatusInternalServerError},
	CodeInvalidFormat: {"ERROR_CODE_INVALID_FORMAT", http.StatusBadRequest},
	CodeInvalidInput:  {"ERROR_CODE_INVALID_INPUT", http.StatusUnprocessableEntity},
	CodeNotFound:      {"ERROR_CODE_NOT_FOUND", http.StatusNotFound},
	CodeConflict:      {"ERROR_CODE_CONFLICT", http.StatusConflict},
	CodeUnauthorized:  {"ERROR_CODE_UNAUTHORIZED", http.StatusUnauthorized},
}

func (c Code) String() string {
	if v, ok := codes[c]; ok {
		return v.name
	}
	return codes[CodeInternal].name
}

// Error carries an optional cause, the message shown to clients, a type and a code.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

// Error returns the cause when present so logs keep the real failure.
func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.msg != "":
		return e.msg
	case e.errType == TypeValidation:
		return "Validation violation"
	case e.errType == TypeBusiness:
		return "Business rule violated"
	default:
		return "Internal error"
	}
}

func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

// Msg is the client facing message.
func (e *Error) Msg() string { return e.msg }

func (e *Error) Type() Type { return e.errType }

func (e *Error) Code() Code { return e.code }

// Fields holds per field validation messages, if any.
func (e *Error) Fields() map[string]string { return e.fields }

func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	if v, ok := codes[e.code]; ok {
		return v.status
	}
	return http.StatusInternalServerError
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr, true
	}
	return nil, false
}

func newError(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer wraps an unexpected failure. The first msg, when given,
// replaces the generic client message.
func NewServer(err error, msgs ...string) error {
	if len(msgs) > 0 && msgs[0] != "" {
		return newError(err, msgs[0], TypeServer, CodeInternal)
	}
	return newError(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness creates a business rule violation with a client message and code.
func NewBusiness(msg string, code Code) error {
	return newError(nil, msg, TypeBusiness, code)
}

// NewBusinessCause is NewBusiness with a cause that stays reachable via errors.Is.
func NewBusinessCause(cause error, msg string, code Code) error {
	return newError(cause, msg, TypeBusiness, code)
}

// NewInvalidInput creates a validation error. Without err, kv is read as
// field/message pairs.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return newError(err, "Validation error", TypeValidation, CodeInvalidInput)
	}

	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}

	fields := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}

	return &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput, fields: fields}
}

// NewInvalidFormat reports a request that could not be decoded.
func NewInvalidFormat(msgs ...string) error {
	if len(msgs) > 0 && msgs[0] != "" {
		return newError(nil, msgs[0], TypeValidation, CodeInvalidFormat)
	}
	return newError(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
}
