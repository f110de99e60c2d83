package types

import "fmt"

// InclusionProof is the Merkle proof of a blob header within its batch.
type InclusionProof string

// String returns the canonical text of the inclusion proof.
func (p InclusionProof) String() string {
	return string(p)
}

// VerificationProof locates a blob within a confirmed batch.
type VerificationProof struct {
	batchID        uint64
	blobIndex      uint64
	batchMetadata  BatchMetadata
	inclusionProof InclusionProof
	quorumIndexes  QuorumIndexes
}

// NewVerificationProof builds a verification proof.
func NewVerificationProof(batchID, blobIndex uint64, metadata BatchMetadata, proof InclusionProof, indexes QuorumIndexes) VerificationProof {
	return VerificationProof{
		batchID:        batchID,
		blobIndex:      blobIndex,
		batchMetadata:  metadata,
		inclusionProof: proof,
		quorumIndexes:  indexes,
	}
}

// BatchID returns the id of the batch on the settlement chain.
func (p VerificationProof) BatchID() uint64 {
	return p.batchID
}

// BlobIndex returns the position of the blob within the batch.
func (p VerificationProof) BlobIndex() uint64 {
	return p.blobIndex
}

// BatchMetadata returns the confirmation record of the batch.
func (p VerificationProof) BatchMetadata() BatchMetadata {
	return p.batchMetadata
}

// InclusionProof returns the Merkle inclusion proof.
func (p VerificationProof) InclusionProof() InclusionProof {
	return p.inclusionProof
}

// QuorumIndexes returns the quorum indexes of the blob.
func (p VerificationProof) QuorumIndexes() QuorumIndexes {
	return p.quorumIndexes
}

// ValidateBasic validates the batch metadata.
func (p VerificationProof) ValidateBasic() error {
	if err := p.batchMetadata.ValidateBasic(); err != nil {
		return fmt.Errorf("batch metadata: %w", err)
	}
	return nil
}
