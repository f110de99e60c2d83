package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// The disperser renders protobuf messages as camelCase JSON. 64-bit integers may be
// quoted, so numeric fields accept both forms.

type wireUint uint64

func (u *wireUint) UnmarshalJSON(data []byte) error {
	v, err := parseWireUint(data, 64)
	*u = wireUint(v)
	return err
}

// wireUint32 rejects values that do not fit in 32 bits instead of wrapping them.
type wireUint32 uint32

func (u *wireUint32) UnmarshalJSON(data []byte) error {
	v, err := parseWireUint(data, 32)
	*u = wireUint32(v)
	return err
}

func parseWireUint(data []byte, bitSize int) (uint64, error) {
	if string(data) == "null" {
		return 0, nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
		if len(data) == 0 {
			return 0, nil
		}
	} else if !json.Valid(data) {
		return 0, fmt.Errorf("invalid unsigned integer %q", data)
	}
	v, err := strconv.ParseUint(string(data), 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("invalid unsigned integer %q: %w", data, err)
	}
	return v, nil
}

type securityParamsJSON struct {
	QuorumNumber                 wireUint32 `json:"quorumNumber,omitempty"`
	AdversaryThresholdPercentage wireUint32 `json:"adversaryThresholdPercentage"`
	QuorumThresholdPercentage    wireUint32 `json:"quorumThresholdPercentage"`
	QuantizationParam            wireUint32 `json:"quantizationParam"`
	EncodedLength                string     `json:"encodedLength"`
}

type commitmentJSON struct {
	X G1Coordinate `json:"x"`
	Y G1Coordinate `json:"y"`
}

type blobHeaderJSON struct {
	Commitment       commitmentJSON       `json:"commitment"`
	DataLength       wireUint             `json:"dataLength"`
	BlobQuorumParams []securityParamsJSON `json:"blobQuorumParams"`
}

type batchHeaderJSON struct {
	BatchRoot               BatchRoot               `json:"batchRoot"`
	QuorumNumbers           QuorumNumbers           `json:"quorumNumbers"`
	QuorumSignedPercentages QuorumSignedPercentages `json:"quorumSignedPercentages"`
	ReferenceBlockNumber    wireUint                `json:"referenceBlockNumber"`
}

type batchMetadataJSON struct {
	BatchHeader             batchHeaderJSON     `json:"batchHeader"`
	SignatoryRecordHash     SignatoryRecordHash `json:"signatoryRecordHash"`
	Fee                     Fee                 `json:"fee"`
	ConfirmationBlockNumber wireUint            `json:"confirmationBlockNumber"`
	BatchHeaderHash         BatchHeaderHash     `json:"batchHeaderHash"`
}

type verificationProofJSON struct {
	BatchID        wireUint          `json:"batchId"`
	BlobIndex      wireUint          `json:"blobIndex"`
	BatchMetadata  batchMetadataJSON `json:"batchMetadata"`
	InclusionProof InclusionProof    `json:"inclusionProof"`
	QuorumIndexes  QuorumIndexes     `json:"quorumIndexes"`
}

type blobInfoJSON struct {
	BlobHeader            blobHeaderJSON        `json:"blobHeader"`
	BlobVerificationProof verificationProofJSON `json:"blobVerificationProof"`
}

type blobStatusJSON struct {
	Status *BlobResult   `json:"status,omitempty"`
	Result *BlobResult   `json:"result,omitempty"`
	Info   *blobInfoJSON `json:"info,omitempty"`
}

type blobResponseJSON struct {
	Result    *BlobResult `json:"result"`
	RequestID *RequestID  `json:"requestId"`
}

func (p SecurityParams) toWire() securityParamsJSON {
	return securityParamsJSON{
		QuorumNumber:                 wireUint32(p.quorumNumber),
		AdversaryThresholdPercentage: wireUint32(p.adversaryThresholdPercentage),
		QuorumThresholdPercentage:    wireUint32(p.quorumThresholdPercentage),
		QuantizationParam:            wireUint32(p.quantizationParam),
		EncodedLength:                p.encodedLength,
	}
}

func (j securityParamsJSON) fromWire() SecurityParams {
	return NewSecurityParams(uint32(j.QuorumNumber), uint32(j.AdversaryThresholdPercentage),
		uint32(j.QuorumThresholdPercentage), uint32(j.QuantizationParam), j.EncodedLength)
}

func (i BlobInfo) toWire() *blobInfoJSON {
	h := i.blobHeader
	params := make([]securityParamsJSON, len(h.blobQuorumParams))
	for n, p := range h.blobQuorumParams {
		params[n] = p.toWire()
	}
	p := i.blobVerificationProof
	m := p.batchMetadata
	return &blobInfoJSON{
		BlobHeader: blobHeaderJSON{
			Commitment:       commitmentJSON{X: h.commitment.x, Y: h.commitment.y},
			DataLength:       wireUint(h.dataLength),
			BlobQuorumParams: params,
		},
		BlobVerificationProof: verificationProofJSON{
			BatchID:   wireUint(p.batchID),
			BlobIndex: wireUint(p.blobIndex),
			BatchMetadata: batchMetadataJSON{
				BatchHeader: batchHeaderJSON{
					BatchRoot:               m.batchHeader.batchRoot,
					QuorumNumbers:           m.batchHeader.quorumNumbers,
					QuorumSignedPercentages: m.batchHeader.quorumSignedPercentages,
					ReferenceBlockNumber:    wireUint(m.batchHeader.referenceBlockNumber),
				},
				SignatoryRecordHash:     m.signatoryRecordHash,
				Fee:                     m.fee,
				ConfirmationBlockNumber: wireUint(m.confirmationBlockNumber),
				BatchHeaderHash:         m.batchHeaderHash,
			},
			InclusionProof: p.inclusionProof,
			QuorumIndexes:  p.quorumIndexes,
		},
	}
}

func (j *blobInfoJSON) fromWire() BlobInfo {
	params := make([]SecurityParams, len(j.BlobHeader.BlobQuorumParams))
	for n, p := range j.BlobHeader.BlobQuorumParams {
		params[n] = p.fromWire()
	}
	h := j.BlobHeader
	p := j.BlobVerificationProof
	m := p.BatchMetadata
	return NewBlobInfo(
		NewBlobHeader(NewBlobCommitment(h.Commitment.X, h.Commitment.Y), uint64(h.DataLength), params),
		NewVerificationProof(
			uint64(p.BatchID),
			uint64(p.BlobIndex),
			NewBatchMetadata(
				NewBatchHeader(m.BatchHeader.BatchRoot, m.BatchHeader.QuorumNumbers,
					m.BatchHeader.QuorumSignedPercentages, uint64(m.BatchHeader.ReferenceBlockNumber)),
				m.SignatoryRecordHash,
				m.Fee,
				uint64(m.ConfirmationBlockNumber),
				m.BatchHeaderHash,
			),
			p.InclusionProof,
			p.QuorumIndexes,
		),
	)
}

// MarshalJSON encodes the blob info in the disperser wire format.
func (i BlobInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.toWire())
}

// UnmarshalJSON decodes the blob info from the disperser wire format.
func (i *BlobInfo) UnmarshalJSON(data []byte) error {
	var j blobInfoJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*i = j.fromWire()
	return nil
}

// MarshalJSON encodes the status in the disperser wire format.
func (s *BlobStatus) MarshalJSON() ([]byte, error) {
	result := s.result
	j := blobStatusJSON{Status: &result}
	if s.info != nil {
		j.Info = s.info.toWire()
	}
	return json.Marshal(j)
}

// UnmarshalJSON decodes a status. The state is read from "status", falling back to
// "result"; one of them is required.
func (s *BlobStatus) UnmarshalJSON(data []byte) error {
	var j blobStatusJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	switch {
	case j.Status != nil:
		s.result = *j.Status
	case j.Result != nil:
		s.result = *j.Result
	default:
		return fmt.Errorf("%w: status", ErrMissingField)
	}
	s.info = nil
	if j.Info != nil {
		info := j.Info.fromWire()
		s.info = &info
	}
	return nil
}

// MarshalJSON encodes the response in the disperser wire format.
func (r BlobResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(blobResponseJSON{Result: &r.result, RequestID: &r.requestID})
}

// UnmarshalJSON decodes a dispersal response; both fields are required.
func (r *BlobResponse) UnmarshalJSON(data []byte) error {
	var j blobResponseJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if j.Result == nil {
		return fmt.Errorf("%w: result", ErrMissingField)
	}
	if j.RequestID == nil {
		return fmt.Errorf("%w: requestId", ErrMissingField)
	}
	r.result = *j.Result
	r.requestID = *j.RequestID
	return nil
}
