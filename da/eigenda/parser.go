package eigenda

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rollkit/eigenda-client/pkg/log"
	"github.com/rollkit/eigenda-client/types"
)

// ParseErrorPolicy decides what the parser does with a reply it cannot decode.
type ParseErrorPolicy int

const (
	// UseDefault logs the failure and returns the default value.
	UseDefault ParseErrorPolicy = iota
	// PropagateError returns a *MalformedResponseError.
	PropagateError
)

// ParseParseErrorPolicy maps the config values "default" and "error".
func ParseParseErrorPolicy(s string) (ParseErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return UseDefault, nil
	case "error":
		return PropagateError, nil
	}
	return UseDefault, fmt.Errorf("unknown parse error policy %q", s)
}

func (p ParseErrorPolicy) String() string {
	if p == PropagateError {
		return "error"
	}
	return "default"
}

var errNoDocument = errors.New("no JSON object found")

// escaped newlines and tabs plus runs of whitespace, as grpcurl pretty-prints
var statusNoise = regexp.MustCompile(`(\\n|\\t|\n\t|\s\s+)`)

// Parser decodes disperser replies.
type Parser struct {
	policy ParseErrorPolicy
	logger log.Logger
}

// NewParser returns a parser. A nil logger discards the failures logged under UseDefault.
func NewParser(policy ParseErrorPolicy, logger log.Logger) *Parser {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Parser{policy: policy, logger: logger.With("module", "parser")}
}

// Policy returns the parser's error policy.
func (p *Parser) Policy() ParseErrorPolicy {
	return p.policy
}

// ParseResponse decodes a dispersal reply.
func (p *Parser) ParseResponse(raw []byte) (types.BlobResponse, error) {
	resp, err := decodeResponse(raw)
	if err != nil {
		return types.DefaultBlobResponse(), p.fail("response", raw, err)
	}
	return resp, nil
}

// ParseStatus decodes a status reply.
func (p *Parser) ParseStatus(raw []byte) (*types.BlobStatus, error) {
	status, err := decodeStatus(raw)
	if err != nil {
		return types.DefaultBlobStatus(), p.fail("status", raw, err)
	}
	return status, nil
}

func decodeResponse(raw []byte) (types.BlobResponse, error) {
	var resp types.BlobResponse
	doc, err := extractDocument(string(raw))
	if err != nil {
		return resp, err
	}
	err = json.Unmarshal([]byte(doc), &resp)
	return resp, err
}

func decodeStatus(raw []byte) (*types.BlobStatus, error) {
	doc, err := extractDocument(string(raw))
	if err != nil {
		return nil, err
	}
	var status types.BlobStatus
	if err := json.Unmarshal([]byte(statusNoise.ReplaceAllString(doc, " ")), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (p *Parser) fail(kind string, raw []byte, err error) error {
	if p.policy == PropagateError {
		return &MalformedResponseError{Kind: kind, Raw: string(raw), Err: err}
	}
	p.logger.Error("failed to parse disperser reply, using default", "kind", kind, "error", err, "raw", string(raw))
	return nil
}

// extractDocument drops any banner the transport prints before the JSON object.
func extractDocument(raw string) (string, error) {
	i := strings.IndexByte(raw, '{')
	if i < 0 {
		return "", errNoDocument
	}
	return raw[i:], nil
}
