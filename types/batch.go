package types

import "fmt"

// BatchRoot is the Merkle root of the blob headers in a batch.
type BatchRoot string

// String returns the canonical text of the batch root.
func (r BatchRoot) String() string {
	return string(r)
}

// BatchHeaderHash identifies a confirmed batch. Together with a blob index it is the
// coordinate used to retrieve a blob.
type BatchHeaderHash string

// String returns the canonical text of the batch header hash.
func (h BatchHeaderHash) String() string {
	return string(h)
}

// SignatoryRecordHash is the hash of the non-signers record of a batch.
type SignatoryRecordHash string

// String returns the canonical text of the signatory record hash.
func (h SignatoryRecordHash) String() string {
	return string(h)
}

// Fee is the fee paid for a batch.
type Fee string

// String returns the canonical text of the fee.
func (f Fee) String() string {
	return string(f)
}

// BatchHeader is the header of the batch a blob was confirmed in.
type BatchHeader struct {
	batchRoot               BatchRoot
	quorumNumbers           QuorumNumbers
	quorumSignedPercentages QuorumSignedPercentages
	referenceBlockNumber    uint64
}

// NewBatchHeader builds a batch header.
func NewBatchHeader(root BatchRoot, numbers QuorumNumbers, signed QuorumSignedPercentages, referenceBlockNumber uint64) BatchHeader {
	return BatchHeader{
		batchRoot:               root,
		quorumNumbers:           numbers,
		quorumSignedPercentages: signed,
		referenceBlockNumber:    referenceBlockNumber,
	}
}

// BatchRoot returns the batch Merkle root.
func (h BatchHeader) BatchRoot() BatchRoot {
	return h.batchRoot
}

// QuorumNumbers returns the quorums that signed the batch.
func (h BatchHeader) QuorumNumbers() QuorumNumbers {
	return h.quorumNumbers
}

// QuorumSignedPercentages returns the signed stake percentage of each quorum.
func (h BatchHeader) QuorumSignedPercentages() QuorumSignedPercentages {
	return h.quorumSignedPercentages
}

// ReferenceBlockNumber returns the block the operator state was read at.
func (h BatchHeader) ReferenceBlockNumber() uint64 {
	return h.referenceBlockNumber
}

// ValidateBasic checks the batch root is present and that every quorum has exactly
// one signed percentage.
func (h BatchHeader) ValidateBasic() error {
	if h.batchRoot == "" {
		return fmt.Errorf("%w: batchRoot", ErrMissingField)
	}
	numbers, err := h.quorumNumbers.Len()
	if err != nil {
		return err
	}
	signed, err := h.quorumSignedPercentages.Len()
	if err != nil {
		return err
	}
	if numbers == 0 {
		return fmt.Errorf("%w: quorumNumbers", ErrMissingField)
	}
	if numbers != signed {
		return fmt.Errorf("%w: %d quorums, %d signed percentages", ErrQuorumMismatch, numbers, signed)
	}
	return nil
}

// BatchMetadata is the confirmation record of a batch.
type BatchMetadata struct {
	batchHeader             BatchHeader
	signatoryRecordHash     SignatoryRecordHash
	fee                     Fee
	confirmationBlockNumber uint64
	batchHeaderHash         BatchHeaderHash
}

// NewBatchMetadata builds batch metadata.
func NewBatchMetadata(header BatchHeader, record SignatoryRecordHash, fee Fee, confirmationBlockNumber uint64, hash BatchHeaderHash) BatchMetadata {
	return BatchMetadata{
		batchHeader:             header,
		signatoryRecordHash:     record,
		fee:                     fee,
		confirmationBlockNumber: confirmationBlockNumber,
		batchHeaderHash:         hash,
	}
}

// BatchHeader returns the batch header.
func (m BatchMetadata) BatchHeader() BatchHeader {
	return m.batchHeader
}

// SignatoryRecordHash returns the hash of the non-signers record.
func (m BatchMetadata) SignatoryRecordHash() SignatoryRecordHash {
	return m.signatoryRecordHash
}

// Fee returns the batch fee.
func (m BatchMetadata) Fee() Fee {
	return m.fee
}

// ConfirmationBlockNumber returns the block the batch was confirmed at.
func (m BatchMetadata) ConfirmationBlockNumber() uint64 {
	return m.confirmationBlockNumber
}

// BatchHeaderHash returns the batch header hash.
func (m BatchMetadata) BatchHeaderHash() BatchHeaderHash {
	return m.batchHeaderHash
}

// ValidateBasic validates the batch header, the presence of the batch header hash and
// that the batch was not confirmed before its reference block.
func (m BatchMetadata) ValidateBasic() error {
	if err := m.batchHeader.ValidateBasic(); err != nil {
		return fmt.Errorf("batch header: %w", err)
	}
	if m.batchHeaderHash == "" {
		return fmt.Errorf("%w: batchHeaderHash", ErrMissingField)
	}
	if m.confirmationBlockNumber < m.batchHeader.referenceBlockNumber {
		return fmt.Errorf("%w: confirmed at %d, reference block %d",
			ErrBlockOrdering, m.confirmationBlockNumber, m.batchHeader.referenceBlockNumber)
	}
	return nil
}
