package eigenda

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rollkit/eigenda-client/types"
)

// ProtocolVersion selects the dispersal payload shape.
type ProtocolVersion string

const (
	// ProtocolV1 carries the data only.
	ProtocolV1 ProtocolVersion = "v1"
	// ProtocolV2 carries the data and one security parameter entry.
	ProtocolV2 ProtocolVersion = "v2"
)

// ParseProtocolVersion accepts "v1", "v2", "1" or "2".
func ParseProtocolVersion(s string) (ProtocolVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v1", "1":
		return ProtocolV1, nil
	case "v2", "2":
		return ProtocolV2, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProtocolVersion, s)
}

// PayloadSecurityParams is one security parameter entry of a v2 payload.
type PayloadSecurityParams struct {
	QuorumID           uint32 `json:"quorum_id"`
	AdversaryThreshold uint32 `json:"adversary_threshold"`
	QuorumThreshold    uint32 `json:"quorum_threshold"`
}

// Payload is the decoded form of a dispersal request.
type Payload struct {
	Data           []byte
	SecurityParams []PayloadSecurityParams
}

type payloadJSON struct {
	Data           string                  `json:"data"`
	SecurityParams []PayloadSecurityParams `json:"security_params,omitempty"`
}

// EncodePayload builds the dispersal request body. raw is base64 encoded. Thresholds
// are passed through unchecked; the disperser rejects invalid ones.
func EncodePayload(version ProtocolVersion, raw []byte, quorumID, adversaryThreshold, quorumThreshold uint32) ([]byte, error) {
	p := payloadJSON{Data: base64.StdEncoding.EncodeToString(raw)}
	switch version {
	case ProtocolV1:
	case ProtocolV2:
		p.SecurityParams = []PayloadSecurityParams{{
			QuorumID:           quorumID,
			AdversaryThreshold: adversaryThreshold,
			QuorumThreshold:    quorumThreshold,
		}}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProtocolVersion, version)
	}
	return json.Marshal(p)
}

// DecodePayload parses a v1 or v2 dispersal request body.
func DecodePayload(raw []byte) (Payload, error) {
	var p payloadJSON
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("decoding payload: %w", err)
	}
	data, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return Payload{}, fmt.Errorf("decoding payload data: %w", err)
	}
	return Payload{Data: data, SecurityParams: p.SecurityParams}, nil
}

type statusRequest struct {
	RequestID types.RequestID `json:"request_id"`
}

type retrieveRequest struct {
	BatchHeaderHash types.BatchHeaderHash `json:"batch_header_hash"`
	BlobIndex       string                `json:"blob_index"`
}

func encodeStatusRequest(id types.RequestID) ([]byte, error) {
	return json.Marshal(statusRequest{RequestID: id})
}

func encodeRetrieveRequest(hash types.BatchHeaderHash, index uint64) ([]byte, error) {
	return json.Marshal(retrieveRequest{BatchHeaderHash: hash, BlobIndex: strconv.FormatUint(index, 10)})
}
