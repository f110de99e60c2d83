package types

import "fmt"

// BlobInfo is the confirmation data of a dispersed blob.
type BlobInfo struct {
	blobHeader            BlobHeader
	blobVerificationProof VerificationProof
}

// NewBlobInfo builds blob info.
func NewBlobInfo(header BlobHeader, proof VerificationProof) BlobInfo {
	return BlobInfo{
		blobHeader:            header,
		blobVerificationProof: proof,
	}
}

// BlobHeader returns the blob header.
func (i BlobInfo) BlobHeader() BlobHeader {
	return i.blobHeader
}

// BlobVerificationProof returns the verification proof.
func (i BlobInfo) BlobVerificationProof() VerificationProof {
	return i.blobVerificationProof
}

// ValidateBasic checks the structural presence of every field needed to verify the
// blob. It does not verify signatures or the inclusion proof.
func (i BlobInfo) ValidateBasic() error {
	if err := i.blobHeader.ValidateBasic(); err != nil {
		return fmt.Errorf("blob header: %w", err)
	}
	if err := i.blobVerificationProof.ValidateBasic(); err != nil {
		return fmt.Errorf("verification proof: %w", err)
	}
	return nil
}
