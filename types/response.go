package types

// RequestID is the opaque identifier the disperser assigns to a dispersal request.
type RequestID string

// String returns the canonical text of the request id.
func (id RequestID) String() string {
	return string(id)
}

// BlobResponse is the immediate answer to a dispersal request.
type BlobResponse struct {
	result    BlobResult
	requestID RequestID
}

// DefaultBlobResponse is the value returned when a response cannot be parsed and the
// parser is configured to fall back to defaults.
func DefaultBlobResponse() BlobResponse {
	return BlobResponse{result: ResultProcessing}
}

// NewBlobResponse builds a dispersal response.
func NewBlobResponse(result BlobResult, id RequestID) BlobResponse {
	return BlobResponse{result: result, requestID: id}
}

// Result returns the state reported at dispersal time.
func (r BlobResponse) Result() BlobResult {
	return r.result
}

// RequestID returns the request identifier, used for status queries and as cache key.
func (r BlobResponse) RequestID() RequestID {
	return r.requestID
}
