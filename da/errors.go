package da

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TransportError is returned by an Invoker when a call could not be completed.
// Message holds the collaborator's error text verbatim (process stderr, HTTP body
// or gRPC status message).
type TransportError struct {
	Method  string
	Message string
	Code    codes.Code
	Err     error
}

// NewTransportError builds a TransportError for method.
func NewTransportError(method, message string, err error) *TransportError {
	return &TransportError{Method: method, Message: message, Code: codes.Unknown, Err: err}
}

func (e *TransportError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Method == "" {
		return "transport: " + msg
	}
	return fmt.Sprintf("transport: %s: %s", e.Method, msg)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// GRPCStatus lets grpc/status recover the code from a TransportError.
func (e *TransportError) GRPCStatus() *status.Status {
	return status.New(e.Code, e.Message)
}

// Temporary reports whether retrying the call may succeed.
func (e *TransportError) Temporary() bool {
	switch e.Code {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return true
	}
	return false
}

// FromStatusError converts an error returned by a gRPC call into a TransportError,
// keeping the status message verbatim.
func FromStatusError(method string, err error) *TransportError {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}
	st, ok := status.FromError(err)
	if !ok {
		return NewTransportError(method, err.Error(), err)
	}
	return &TransportError{Method: method, Message: st.Message(), Code: st.Code(), Err: err}
}

// IsTemporary reports whether err wraps a TransportError that may succeed on retry.
func IsTemporary(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Temporary()
}
