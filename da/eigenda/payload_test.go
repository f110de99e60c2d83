package eigenda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollkit/eigenda-client/types"
)

func TestEncodePayload(t *testing.T) {
	cases := []struct {
		name    string
		version ProtocolVersion
		want    string
	}{
		{"v1", ProtocolV1, `{"data":"aGVsbG8gd29ybGQ="}`},
		{"v2", ProtocolV2, `{"data":"aGVsbG8gd29ybGQ=","security_params":[{"quorum_id":0,"adversary_threshold":40,"quorum_threshold":60}]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := EncodePayload(c.version, []byte("hello world"), 0, 40, 60)
			require.NoError(t, err)
			assert.Equal(t, c.want, string(got))
		})
	}
}

func TestEncodePayloadPassesThresholdsThrough(t *testing.T) {
	got, err := EncodePayload(ProtocolV2, nil, 7, 90, 10)
	require.NoError(t, err)
	assert.Equal(t, `{"data":"","security_params":[{"quorum_id":7,"adversary_threshold":90,"quorum_threshold":10}]}`, string(got))
}

func TestEncodePayloadUnknownVersion(t *testing.T) {
	_, err := EncodePayload("v3", []byte("x"), 0, 33, 55)
	assert.ErrorIs(t, err, ErrUnknownProtocolVersion)
}

func TestPayloadRoundTrip(t *testing.T) {
	for i := 0; i < 20; i++ {
		raw := types.GetRandomBytes(uint(i * 37))
		quorum := uint32(i % 3)

		enc, err := EncodePayload(ProtocolV2, raw, quorum, 33, 55)
		require.NoError(t, err)
		p, err := DecodePayload(enc)
		require.NoError(t, err)

		assert.Equal(t, len(raw), len(p.Data))
		if len(raw) > 0 {
			assert.Equal(t, raw, p.Data)
		}
		require.Len(t, p.SecurityParams, 1)
		assert.Equal(t, PayloadSecurityParams{QuorumID: quorum, AdversaryThreshold: 33, QuorumThreshold: 55}, p.SecurityParams[0])
	}

	enc, err := EncodePayload(ProtocolV1, []byte("abc"), 0, 0, 0)
	require.NoError(t, err)
	p, err := DecodePayload(enc)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), p.Data)
	assert.Empty(t, p.SecurityParams)
}

func TestDecodePayloadErrors(t *testing.T) {
	_, err := DecodePayload([]byte("not json"))
	assert.Error(t, err)
	_, err = DecodePayload([]byte(`{"data":"***"}`))
	assert.ErrorContains(t, err, "decoding payload data")
}

func TestParseProtocolVersion(t *testing.T) {
	for in, want := range map[string]ProtocolVersion{"v1": ProtocolV1, "1": ProtocolV1, "V2": ProtocolV2, " 2 ": ProtocolV2} {
		got, err := ParseProtocolVersion(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseProtocolVersion("v9")
	assert.ErrorIs(t, err, ErrUnknownProtocolVersion)
}

func TestRequestEncoding(t *testing.T) {
	status, err := encodeStatusRequest("abc=")
	require.NoError(t, err)
	assert.Equal(t, `{"request_id":"abc="}`, string(status))

	retrieve, err := encodeRetrieveRequest("hash=", 12)
	require.NoError(t, err)
	assert.Equal(t, `{"batch_header_hash":"hash=","blob_index":"12"}`, string(retrieve))
}
