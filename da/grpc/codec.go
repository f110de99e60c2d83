package grpc

import (
	"encoding/json"
	"fmt"
)

// CodecName is the content-subtype the JSON codec registers for.
const CodecName = "json"

// rawJSON carries an already encoded JSON document through the codec untouched.
type rawJSON []byte

// jsonCodec implements encoding.Codec. rawJSON values pass through as is;
// anything else goes through encoding/json.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case *rawJSON:
		return *m, nil
	case rawJSON:
		return m, nil
	case json.RawMessage:
		return m, nil
	case *json.RawMessage:
		return *m, nil
	}
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case *rawJSON:
		*m = append((*m)[:0], data...)
		return nil
	case *json.RawMessage:
		*m = append((*m)[:0], data...)
		return nil
	case nil:
		return fmt.Errorf("json codec: nil destination")
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}
