package eigenda

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse matches every *MalformedResponseError.
	ErrMalformedResponse = errors.New("malformed disperser response")
	// ErrInvalidVerificationData is returned when a confirmed status fails structural validation.
	ErrInvalidVerificationData = errors.New("invalid verification data")
	// ErrInvalidConfig is returned by NewClient before any network activity.
	ErrInvalidConfig = errors.New("invalid client configuration")
	// ErrUnboundedPolling is returned when a poll has neither an attempt cap nor a deadline.
	ErrUnboundedPolling = errors.New("polling needs max attempts, a timeout or a context deadline")
	// ErrPollAttemptsExhausted is returned when polling gave up before a terminal status.
	ErrPollAttemptsExhausted = errors.New("poll attempts exhausted")
	// ErrUnknownProtocolVersion is returned for payload versions other than v1 and v2.
	ErrUnknownProtocolVersion = errors.New("unknown protocol version")
)

// MalformedResponseError describes a disperser reply that could not be decoded.
type MalformedResponseError struct {
	// Kind is "response" or "status".
	Kind string
	// Raw is the reply as received.
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s: %v", e.Kind, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformedResponse) hold.
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}
