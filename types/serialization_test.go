package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStatusJSON(t *testing.T) {
	info := GetRandomBlobInfo()
	original := NewBlobStatus(ResultConfirmed, &info)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"CONFIRMED"`)
	assert.Contains(t, string(data), `"blobVerificationProof"`)
	assert.Contains(t, string(data), `"batchHeaderHash"`)

	var decoded BlobStatus
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, &decoded)
}

func TestBlobStatusUnmarshal(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		wantResult BlobResult
		wantErr    error
	}{
		{"status field", `{"status":"PROCESSING"}`, ResultProcessing, nil},
		{"result field", `{"result":"FAILED"}`, ResultFailed, nil},
		{"status wins over result", `{"status":"CONFIRMED","result":"FAILED","info":{}}`, ResultConfirmed, nil},
		{"other state", `{"status":"INSUFFICIENT_SIGNATURES"}`, BlobResult("INSUFFICIENT_SIGNATURES"), nil},
		{"quoted integers", `{"status":"CONFIRMED","info":{"blobVerificationProof":{"blobIndex":"12"}}}`, ResultConfirmed, nil},
		{"missing state", `{"info":{}}`, "", ErrMissingField},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var s BlobStatus
			err := json.Unmarshal([]byte(c.input), &s)
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.wantResult, s.Result())
		})
	}
}

func TestBlobStatusUnmarshalQuotedIndex(t *testing.T) {
	var s BlobStatus
	require.NoError(t, json.Unmarshal([]byte(`{"status":"CONFIRMED","info":{"blobVerificationProof":{"blobIndex":"12"}}}`), &s))

	index, err := s.BlobIndex()
	require.NoError(t, err)
	assert.Equal(t, uint64(12), index)
}

func TestBlobStatusUnmarshalBadInteger(t *testing.T) {
	var s BlobStatus
	err := json.Unmarshal([]byte(`{"status":"CONFIRMED","info":{"blobVerificationProof":{"blobIndex":"-1"}}}`), &s)
	assert.Error(t, err)
}

func TestBlobStatusUnmarshalThresholdOverflow(t *testing.T) {
	fixture := ConfirmedStatusFixture[strings.Index(ConfirmedStatusFixture, "{"):]
	var s BlobStatus
	require.NoError(t, json.Unmarshal([]byte(fixture), &s))
	require.NoError(t, s.ValidateBasic())

	// 2^32 + 40 would wrap to 40 and pass the threshold check.
	overflow := strings.Replace(fixture, `"adversaryThresholdPercentage": 33`, `"adversaryThresholdPercentage": 4294967336`, 1)
	require.NotEqual(t, fixture, overflow)
	err := json.Unmarshal([]byte(overflow), &s)
	assert.ErrorContains(t, err, "4294967336")

	quoted := strings.Replace(fixture, `"quorumThresholdPercentage": 55`, `"quorumThresholdPercentage": "4294967351"`, 1)
	require.NotEqual(t, fixture, quoted)
	assert.Error(t, json.Unmarshal([]byte(quoted), &s))
}

func TestWireUintUnmarshal(t *testing.T) {
	cases := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{`12`, 12, false},
		{`"12"`, 12, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`"12`, 0, true},
		{`12"`, 0, true},
		{`"1"2"`, 0, true},
		{`-1`, 0, true},
		{`18446744073709551616`, 0, true},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			var u wireUint
			err := u.UnmarshalJSON([]byte(c.input))
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, uint64(u))
		})
	}

	var u32 wireUint32
	assert.Error(t, u32.UnmarshalJSON([]byte(`4294967296`)))
	require.NoError(t, u32.UnmarshalJSON([]byte(`"4294967295"`)))
	assert.Equal(t, uint32(4294967295), uint32(u32))
}

func TestBlobResponseJSON(t *testing.T) {
	original := NewBlobResponse(ResultProcessing, GetRandomRequestID())

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded BlobResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestBlobResponseUnmarshalRequiredFields(t *testing.T) {
	var r BlobResponse
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"requestId":"abc"}`), &r), ErrMissingField)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"result":"PROCESSING"}`), &r), ErrMissingField)

	require.NoError(t, json.Unmarshal([]byte(DispersalResponseFixture), &r))
	assert.Equal(t, ResultProcessing, r.Result())
	assert.Equal(t, RequestID("MTdmMmE2YmM0ZTk3ZjI0ZjQ0NjNmMGQ2MzRmMjFjZjQ="), r.RequestID())
}
