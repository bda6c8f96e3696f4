package gocas

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	// ErrorCodeConfiguration indicates missing or contradictory setup. It is
	// surfaced before any request is served and never retried.
	ErrorCodeConfiguration ErrorCode = "configuration_error"
	// ErrorCodeValidation indicates the identity provider rejected or could
	// not validate a ticket. Tickets are single use, so validation is never
	// retried.
	ErrorCodeValidation ErrorCode = "validation_error"
	// ErrorCodeDecoding indicates a malformed logout payload, undecodable
	// compression or a missing session index.
	ErrorCodeDecoding ErrorCode = "protocol_decoding_error"
	// ErrorCodeSessionStore indicates the session store could not perform an
	// operation. The logout pipeline logs it and proceeds.
	ErrorCodeSessionStore ErrorCode = "session_store_error"
	ErrorCodeInternal     ErrorCode = "internal_error"
)

func (c ErrorCode) StatusCode() int {
	switch c {
	case ErrorCodeValidation:
		return http.StatusUnauthorized
	case ErrorCodeDecoding:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Code        ErrorCode `json:"error,omitempty"`
	Description string    `json:"error_description,omitempty"`
	wrapped     error     `json:"-"`
}

func NewError(code ErrorCode, desc string) Error {
	return Error{
		Code:        code,
		Description: desc,
	}
}

func (err Error) Error() string {
	if err.wrapped == nil {
		return fmt.Sprintf("%s %s", err.Code, err.Description)
	}

	return fmt.Sprintf("%s %s: %v", err.Code, err.Description, err.wrapped)
}

func (err Error) StatusCode() int {
	return err.Code.StatusCode()
}

func (err Error) Unwrap() error {
	return err.wrapped
}

func WrapError(code ErrorCode, desc string, err error) Error {
	return Error{
		Code:        code,
		Description: desc,
		wrapped:     err,
	}
}
