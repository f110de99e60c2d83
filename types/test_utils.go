package types

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
)

// ConfirmedStatusFixture is a CONFIRMED status as printed by grpcurl, including the
// banner line the transport prepends.
const ConfirmedStatusFixture = `Response contents:
{
  "status": "CONFIRMED",
  "info": {
    "blobHeader": {
      "commitment": {
        "x": "LvRZ3Qtz5ZdaXyOvWGkbcnK1YvXnrmKkKZ9yA+0lG5o=",
        "y": "Evr/w6oeY7HDx9R4+bQUcb43TsmZV6/7ERJxiLzvRr4="
      },
      "dataLength": 1,
      "blobQuorumParams": [
        {
          "adversaryThresholdPercentage": 33,
          "quorumThresholdPercentage": 55,
          "quantizationParam": 1,
          "encodedLength": "64"
        }
      ]
    },
    "blobVerificationProof": {
      "batchId": 5418,
      "blobIndex": 7,
      "batchMetadata": {
        "batchHeader": {
          "batchRoot": "dSRtNo1H4hf8sHBV8WDHiDeOt7p8ViBmoxQWEfUD3XQ=",
          "quorumNumbers": "AA==",
          "quorumSignedPercentages": "YQ==",
          "referenceBlockNumber": 1165320
        },
        "signatoryRecordHash": "bBRHvmPjMg4IAzc5xsRcMvy+YQjPw4Ml7NtoDs1DNDw=",
        "fee": "AA==",
        "confirmationBlockNumber": 1165410,
        "batchHeaderHash": "bbXdNFljrg9Iy3EvGNTJvjk8zuj60Z8xCgomLCU7sVo="
      },
      "inclusionProof": "ZJvdcaX6V3WdO0kG/HfEzzTL4jTkKQOKuafvvxGUj6Y=",
      "quorumIndexes": "AA=="
    }
  }
}`

// ProcessingStatusFixture is a PROCESSING status as printed by grpcurl.
const ProcessingStatusFixture = `{
  "status": "PROCESSING",
  "info": {}
}`

// DispersalResponseFixture is a dispersal response as printed by grpcurl.
const DispersalResponseFixture = `{
  "result": "PROCESSING",
  "requestId": "MTdmMmE2YmM0ZTk3ZjI0ZjQ0NjNmMGQ2MzRmMjFjZjQ="
}`

// GetRandomBytes returns a byte slice of random bytes of length n.
func GetRandomBytes(n uint) []byte {
	data := make([]byte, n)
	_, _ = rand.Read(data)
	return data
}

// GetRandomRequestID returns a random request id.
func GetRandomRequestID() RequestID {
	return RequestID(hex.EncodeToString(GetRandomBytes(16)))
}

// GetRandomBlobInfo returns structurally valid blob info with random hashes.
func GetRandomBlobInfo() BlobInfo {
	b64 := func(n uint) string {
		return base64.StdEncoding.EncodeToString(GetRandomBytes(n))
	}
	header := NewBlobHeader(
		NewBlobCommitment(G1Coordinate(b64(32)), G1Coordinate(b64(32))),
		1,
		[]SecurityParams{NewSecurityParams(0, 33, 55, 1, "64")},
	)
	metadata := NewBatchMetadata(
		NewBatchHeader(BatchRoot(b64(32)), QuorumNumbers("AAE="), QuorumSignedPercentages("YWI="), 100),
		SignatoryRecordHash(b64(32)),
		Fee("AA=="),
		110,
		BatchHeaderHash(b64(32)),
	)
	return NewBlobInfo(header, NewVerificationProof(1, 0, metadata, InclusionProof(b64(32)), QuorumIndexes("AAE=")))
}
