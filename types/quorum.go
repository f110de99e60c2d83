package types

import (
	"encoding/base64"
	"fmt"
)

// QuorumNumbers is the base64 encoded list of quorum numbers that signed a batch.
type QuorumNumbers string

// String returns the canonical text of the quorum numbers.
func (q QuorumNumbers) String() string {
	return string(q)
}

// Bytes decodes the quorum numbers, one byte per quorum.
func (q QuorumNumbers) Bytes() ([]byte, error) {
	return decodeQuorumBytes("quorum numbers", string(q))
}

// Len returns the number of quorums carried by q.
func (q QuorumNumbers) Len() (int, error) {
	b, err := q.Bytes()
	return len(b), err
}

// QuorumSignedPercentages is the base64 encoded list of signed stake percentages,
// one byte per quorum in the same order as QuorumNumbers.
type QuorumSignedPercentages string

// String returns the canonical text of the signed percentages.
func (q QuorumSignedPercentages) String() string {
	return string(q)
}

// Bytes decodes the signed percentages.
func (q QuorumSignedPercentages) Bytes() ([]byte, error) {
	return decodeQuorumBytes("quorum signed percentages", string(q))
}

// Len returns the number of signed percentages carried by q.
func (q QuorumSignedPercentages) Len() (int, error) {
	b, err := q.Bytes()
	return len(b), err
}

// QuorumIndexes is the base64 encoded position of each blob quorum within the batch quorums.
type QuorumIndexes string

// String returns the canonical text of the quorum indexes.
func (q QuorumIndexes) String() string {
	return string(q)
}

// Bytes decodes the quorum indexes.
func (q QuorumIndexes) Bytes() ([]byte, error) {
	return decodeQuorumBytes("quorum indexes", string(q))
}

func decodeQuorumBytes(field, s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding %s %q: %w", field, s, err)
	}
	return b, nil
}

// SecurityParams are the quorum parameters a blob was dispersed with.
type SecurityParams struct {
	quorumNumber                 uint32
	adversaryThresholdPercentage uint32
	quorumThresholdPercentage    uint32
	quantizationParam            uint32
	encodedLength                string
}

// NewSecurityParams builds quorum parameters. Values are not checked, see ValidateBasic.
func NewSecurityParams(quorumNumber, adversaryThreshold, quorumThreshold, quantizationParam uint32, encodedLength string) SecurityParams {
	return SecurityParams{
		quorumNumber:                 quorumNumber,
		adversaryThresholdPercentage: adversaryThreshold,
		quorumThresholdPercentage:    quorumThreshold,
		quantizationParam:            quantizationParam,
		encodedLength:                encodedLength,
	}
}

// QuorumNumber returns the quorum these parameters apply to.
func (p SecurityParams) QuorumNumber() uint32 {
	return p.quorumNumber
}

// AdversaryThresholdPercentage returns the maximum adversarial stake percentage tolerated.
func (p SecurityParams) AdversaryThresholdPercentage() uint32 {
	return p.adversaryThresholdPercentage
}

// QuorumThresholdPercentage returns the stake percentage required to confirm.
func (p SecurityParams) QuorumThresholdPercentage() uint32 {
	return p.quorumThresholdPercentage
}

// QuantizationParam returns the chunk quantization factor.
func (p SecurityParams) QuantizationParam() uint32 {
	return p.quantizationParam
}

// EncodedLength returns the encoded blob length as rendered on the wire.
func (p SecurityParams) EncodedLength() string {
	return p.encodedLength
}

// ValidateBasic checks 0 <= adversary threshold < quorum threshold <= 100.
func (p SecurityParams) ValidateBasic() error {
	if p.adversaryThresholdPercentage >= p.quorumThresholdPercentage || p.quorumThresholdPercentage > 100 {
		return fmt.Errorf("%w: adversary %d%%, quorum %d%%",
			ErrInvalidThresholds, p.adversaryThresholdPercentage, p.quorumThresholdPercentage)
	}
	return nil
}
