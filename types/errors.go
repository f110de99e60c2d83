package types

import "errors"

var (
	// ErrNotConfirmed is returned by BlobStatus accessors that need confirmation data
	// when the status is not CONFIRMED.
	ErrNotConfirmed = errors.New("blob is not confirmed")
	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrQuorumMismatch is returned when quorum numbers and signed percentages differ in length.
	ErrQuorumMismatch = errors.New("quorum numbers and signed percentages mismatch")
	// ErrInvalidThresholds is returned when adversary and quorum thresholds are out of order.
	ErrInvalidThresholds = errors.New("invalid security thresholds")
	// ErrBlockOrdering is returned when a batch is confirmed before its reference block.
	ErrBlockOrdering = errors.New("confirmation block precedes reference block")
)
