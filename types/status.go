package types

import "fmt"

// BlobResult is the lifecycle state of a dispersal request as reported by the disperser.
// Any value other than the known states is an "other" state; the value is its reason.
type BlobResult string

const (
	// ResultProcessing means the blob is still being dispersed.
	ResultProcessing BlobResult = "PROCESSING"
	// ResultConfirmed means the blob was included in a signed batch.
	ResultConfirmed BlobResult = "CONFIRMED"
	// ResultFailed means dispersal failed.
	ResultFailed BlobResult = "FAILED"
)

// String implements fmt.Stringer.
func (r BlobResult) String() string {
	return string(r)
}

// IsOther reports whether r is none of the known states.
func (r BlobResult) IsOther() bool {
	switch r {
	case ResultProcessing, ResultConfirmed, ResultFailed:
		return false
	}
	return true
}

// Reason returns the raw state of an "other" result, or "" for known states.
func (r BlobResult) Reason() string {
	if r.IsOther() {
		return string(r)
	}
	return ""
}

// IsTerminal reports whether polling can stop at r. Unknown states are treated as
// terminal.
func (r BlobResult) IsTerminal() bool {
	return r != ResultProcessing
}

// BlobStatus is the answer to a status query. Every accessor that reaches into the
// confirmation data returns ErrNotConfirmed unless the result is ResultConfirmed.
type BlobStatus struct {
	result BlobResult
	info   *BlobInfo
}

// DefaultBlobStatus is the value returned when a status cannot be parsed and the
// parser is configured to fall back to defaults.
func DefaultBlobStatus() *BlobStatus {
	return &BlobStatus{result: ResultProcessing}
}

// NewBlobStatus builds a status. info may be nil for non confirmed states.
func NewBlobStatus(result BlobResult, info *BlobInfo) *BlobStatus {
	s := &BlobStatus{result: result}
	if info != nil {
		cp := *info
		s.info = &cp
	}
	return s
}

// Result returns the lifecycle state.
func (s *BlobStatus) Result() BlobResult {
	return s.result
}

// IsConfirmed reports whether the confirmation data may be read.
func (s *BlobStatus) IsConfirmed() bool {
	return s.result == ResultConfirmed
}

// Info returns the confirmation data.
func (s *BlobStatus) Info() (BlobInfo, error) {
	if s.result != ResultConfirmed {
		return BlobInfo{}, fmt.Errorf("%w: status is %s", ErrNotConfirmed, s.result)
	}
	if s.info == nil {
		return BlobInfo{}, fmt.Errorf("%w: info", ErrMissingField)
	}
	return *s.info, nil
}

// BlobHeader returns the blob header of a confirmed blob.
func (s *BlobStatus) BlobHeader() (BlobHeader, error) {
	info, err := s.Info()
	return info.blobHeader, err
}

// BlobVerificationProof returns the verification proof of a confirmed blob.
func (s *BlobStatus) BlobVerificationProof() (VerificationProof, error) {
	info, err := s.Info()
	return info.blobVerificationProof, err
}

// Commitment returns the blob commitment.
func (s *BlobStatus) Commitment() (BlobCommitment, error) {
	h, err := s.BlobHeader()
	return h.commitment, err
}

// DataLength returns the blob data length.
func (s *BlobStatus) DataLength() (uint64, error) {
	h, err := s.BlobHeader()
	return h.dataLength, err
}

// BlobQuorumParams returns the quorum parameters the blob was dispersed with.
func (s *BlobStatus) BlobQuorumParams() ([]SecurityParams, error) {
	h, err := s.BlobHeader()
	if err != nil {
		return nil, err
	}
	return h.BlobQuorumParams(), nil
}

// BatchID returns the batch id.
func (s *BlobStatus) BatchID() (uint64, error) {
	p, err := s.BlobVerificationProof()
	return p.batchID, err
}

// BlobIndex returns the index of the blob within its batch.
func (s *BlobStatus) BlobIndex() (uint64, error) {
	p, err := s.BlobVerificationProof()
	return p.blobIndex, err
}

// BatchMetadata returns the batch confirmation record.
func (s *BlobStatus) BatchMetadata() (BatchMetadata, error) {
	p, err := s.BlobVerificationProof()
	return p.batchMetadata, err
}

// InclusionProof returns the Merkle inclusion proof.
func (s *BlobStatus) InclusionProof() (InclusionProof, error) {
	p, err := s.BlobVerificationProof()
	return p.inclusionProof, err
}

// QuorumIndexes returns the quorum indexes of the blob.
func (s *BlobStatus) QuorumIndexes() (QuorumIndexes, error) {
	p, err := s.BlobVerificationProof()
	return p.quorumIndexes, err
}

// BatchHeader returns the header of the batch.
func (s *BlobStatus) BatchHeader() (BatchHeader, error) {
	m, err := s.BatchMetadata()
	return m.batchHeader, err
}

// SignatoryRecordHash returns the signatory record hash of the batch.
func (s *BlobStatus) SignatoryRecordHash() (SignatoryRecordHash, error) {
	m, err := s.BatchMetadata()
	return m.signatoryRecordHash, err
}

// Fee returns the batch fee.
func (s *BlobStatus) Fee() (Fee, error) {
	m, err := s.BatchMetadata()
	return m.fee, err
}

// ConfirmationBlockNumber returns the block the batch was confirmed at.
func (s *BlobStatus) ConfirmationBlockNumber() (uint64, error) {
	m, err := s.BatchMetadata()
	return m.confirmationBlockNumber, err
}

// BatchHeaderHash returns the batch header hash, the first half of the retrieval coordinate.
func (s *BlobStatus) BatchHeaderHash() (BatchHeaderHash, error) {
	m, err := s.BatchMetadata()
	return m.batchHeaderHash, err
}

// BatchRoot returns the batch Merkle root.
func (s *BlobStatus) BatchRoot() (BatchRoot, error) {
	h, err := s.BatchHeader()
	return h.batchRoot, err
}

// QuorumNumbers returns the quorums that signed the batch.
func (s *BlobStatus) QuorumNumbers() (QuorumNumbers, error) {
	h, err := s.BatchHeader()
	return h.quorumNumbers, err
}

// QuorumSignedPercentages returns the signed percentage of each quorum.
func (s *BlobStatus) QuorumSignedPercentages() (QuorumSignedPercentages, error) {
	h, err := s.BatchHeader()
	return h.quorumSignedPercentages, err
}

// ReferenceBlockNumber returns the reference block number of the batch.
func (s *BlobStatus) ReferenceBlockNumber() (uint64, error) {
	h, err := s.BatchHeader()
	return h.referenceBlockNumber, err
}

// ValidateBasic validates the confirmation data of a confirmed status. Statuses in any
// other state carry nothing to validate.
func (s *BlobStatus) ValidateBasic() error {
	if !s.IsConfirmed() {
		return nil
	}
	info, err := s.Info()
	if err != nil {
		return err
	}
	return info.ValidateBasic()
}
