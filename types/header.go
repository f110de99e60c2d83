package types

import "fmt"

// G1Coordinate is one coordinate of a KZG commitment point.
type G1Coordinate string

// String returns the canonical text of the coordinate.
func (c G1Coordinate) String() string {
	return string(c)
}

// BlobCommitment is the KZG commitment to the blob data.
type BlobCommitment struct {
	x G1Coordinate
	y G1Coordinate
}

// NewBlobCommitment builds a commitment from its coordinates.
func NewBlobCommitment(x, y G1Coordinate) BlobCommitment {
	return BlobCommitment{x: x, y: y}
}

// X returns the x coordinate.
func (c BlobCommitment) X() G1Coordinate {
	return c.x
}

// Y returns the y coordinate.
func (c BlobCommitment) Y() G1Coordinate {
	return c.y
}

// ValidateBasic checks both coordinates are present.
func (c BlobCommitment) ValidateBasic() error {
	if c.x == "" || c.y == "" {
		return fmt.Errorf("%w: commitment", ErrMissingField)
	}
	return nil
}

// BlobHeader describes a dispersed blob.
type BlobHeader struct {
	commitment       BlobCommitment
	dataLength       uint64
	blobQuorumParams []SecurityParams
}

// NewBlobHeader builds a blob header. The params slice is copied.
func NewBlobHeader(commitment BlobCommitment, dataLength uint64, params []SecurityParams) BlobHeader {
	return BlobHeader{
		commitment:       commitment,
		dataLength:       dataLength,
		blobQuorumParams: append([]SecurityParams(nil), params...),
	}
}

// Commitment returns the blob commitment.
func (h BlobHeader) Commitment() BlobCommitment {
	return h.commitment
}

// DataLength returns the length of the blob data in field elements.
func (h BlobHeader) DataLength() uint64 {
	return h.dataLength
}

// BlobQuorumParams returns a copy of the quorum parameters, in wire order.
func (h BlobHeader) BlobQuorumParams() []SecurityParams {
	return append([]SecurityParams(nil), h.blobQuorumParams...)
}

// ValidateBasic checks the commitment and that at least one valid set of quorum
// parameters is present.
func (h BlobHeader) ValidateBasic() error {
	if err := h.commitment.ValidateBasic(); err != nil {
		return err
	}
	if len(h.blobQuorumParams) == 0 {
		return fmt.Errorf("%w: blobQuorumParams", ErrMissingField)
	}
	for i, p := range h.blobQuorumParams {
		if err := p.ValidateBasic(); err != nil {
			return fmt.Errorf("quorum params %d: %w", i, err)
		}
	}
	return nil
}
