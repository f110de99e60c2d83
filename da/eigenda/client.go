package eigenda

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/rollkit/eigenda-client/da"
	"github.com/rollkit/eigenda-client/pkg/cache"
	"github.com/rollkit/eigenda-client/pkg/log"
	"github.com/rollkit/eigenda-client/pkg/store"
	"github.com/rollkit/eigenda-client/types"
)

// DefaultCacheSize is the response cache capacity used when Config.CacheSize is zero.
const DefaultCacheSize = 1024

// Config holds the client-wide dispersal parameters.
type Config struct {
	ProtocolVersion    ProtocolVersion
	AdversaryThreshold uint32
	QuorumThreshold    uint32
	ParseErrorPolicy   ParseErrorPolicy
	// Validate enables structural validation of confirmed statuses.
	Validate  bool
	CacheSize int
}

// DefaultConfig returns the thresholds used by the public testnet.
func DefaultConfig() Config {
	return Config{
		ProtocolVersion:    ProtocolV2,
		AdversaryThreshold: 33,
		QuorumThreshold:    55,
		ParseErrorPolicy:   UseDefault,
		Validate:           true,
		CacheSize:          DefaultCacheSize,
	}
}

// ValidateBasic checks the configuration. Thresholds are left to the disperser.
func (c Config) ValidateBasic() error {
	var err error
	switch c.ProtocolVersion {
	case ProtocolV1, ProtocolV2:
	default:
		err = multierr.Append(err, fmt.Errorf("%w: %q", ErrUnknownProtocolVersion, c.ProtocolVersion))
	}
	if c.CacheSize < 0 {
		err = multierr.Append(err, fmt.Errorf("cache size must not be negative, got %d", c.CacheSize))
	}
	if c.ParseErrorPolicy != UseDefault && c.ParseErrorPolicy != PropagateError {
		err = multierr.Append(err, fmt.Errorf("unknown parse error policy %d", c.ParseErrorPolicy))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Journal records dispersal requests. *store.Journal implements it.
type Journal interface {
	Put(ctx context.Context, rec store.Record) error
	UpdateStatus(ctx context.Context, id types.RequestID, status *types.BlobStatus) error
}

var _ Journal = (*store.Journal)(nil)

// Client disperses blobs, tracks their status and retrieves them. It is safe for
// concurrent use.
type Client struct {
	invoker da.Invoker
	cfg     Config
	parser  *Parser
	cache   cache.Cache[types.RequestID, types.BlobResponse]
	journal Journal
	logger  log.Logger
	metrics *Metrics
}

// NewClient returns a client dispatching through invoker.
func NewClient(invoker da.Invoker, cfg Config, opts ...Option) (*Client, error) {
	if invoker == nil {
		return nil, fmt.Errorf("%w: nil invoker", ErrInvalidConfig)
	}
	if err := cfg.ValidateBasic(); err != nil {
		return nil, err
	}
	c := &Client{invoker: invoker, cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.NewNopLogger()
	}
	c.logger = c.logger.With("module", "eigenda")
	if c.metrics == nil {
		c.metrics = NopMetrics()
	}
	if c.parser == nil {
		c.parser = NewParser(cfg.ParseErrorPolicy, c.logger)
	}
	if c.cache == nil {
		size := cfg.CacheSize
		if size == 0 {
			size = DefaultCacheSize
		}
		lru, err := cache.NewLRU(size, func(id types.RequestID, _ types.BlobResponse) {
			c.metrics.CacheEvictions.Add(1)
			c.logger.Debug("evicted cached response", "request_id", id)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		c.cache = lru
	}
	return c, nil
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Disperse submits raw for dispersal to quorumID using the client-wide thresholds.
// Responses with a request id that did not fail are cached and journaled.
func (c *Client) Disperse(ctx context.Context, raw []byte, quorumID uint32) (types.BlobResponse, error) {
	req, err := EncodePayload(c.cfg.ProtocolVersion, raw, quorumID, c.cfg.AdversaryThreshold, c.cfg.QuorumThreshold)
	if err != nil {
		return types.DefaultBlobResponse(), err
	}
	reply, err := c.invoke(ctx, MethodDisperseBlob, req)
	if err != nil {
		return types.DefaultBlobResponse(), fmt.Errorf("disperse blob: %w", err)
	}
	resp, err := decodeResponse(reply)
	if err != nil {
		c.metrics.ParseErrors.With("kind", "response").Add(1)
		resp = types.DefaultBlobResponse()
		if err := c.parser.fail("response", reply, err); err != nil {
			return resp, err
		}
	}

	c.metrics.Dispersals.With("result", resp.Result().String()).Add(1)
	c.metrics.DispersedBytes.Add(float64(len(raw)))
	c.logger.Info("dispersed blob", "request_id", resp.RequestID(), "result", resp.Result(), "size", len(raw), "quorum", quorumID)

	if resp.RequestID() == "" || resp.Result() == types.ResultFailed {
		return resp, nil
	}
	c.cache.Put(resp.RequestID(), resp)
	c.metrics.CacheSize.Set(float64(c.cache.Len()))
	if c.journal != nil {
		rec := store.Record{RequestID: resp.RequestID(), Result: resp.Result(), QuorumID: quorumID, DataSize: len(raw)}
		if err := c.journal.Put(ctx, rec); err != nil {
			c.logger.Warn("failed to journal dispersal", "request_id", resp.RequestID(), "error", err)
		}
	}
	return resp, nil
}

// CachedResponse returns the dispersal response cached for id.
func (c *Client) CachedResponse(id types.RequestID) (types.BlobResponse, bool) {
	return c.cache.Get(id)
}

// GetStatus polls the disperser once for the status of id. Confirmed statuses are
// validated when the client is configured to do so.
func (c *Client) GetStatus(ctx context.Context, id types.RequestID) (*types.BlobStatus, error) {
	req, err := encodeStatusRequest(id)
	if err != nil {
		return nil, err
	}
	reply, err := c.invoke(ctx, MethodGetBlobStatus, req)
	if err != nil {
		return nil, fmt.Errorf("get blob status %s: %w", id, err)
	}
	status, err := decodeStatus(reply)
	if err != nil {
		c.metrics.ParseErrors.With("kind", "status").Add(1)
		status = types.DefaultBlobStatus()
		if err := c.parser.fail("status", reply, err); err != nil {
			return status, err
		}
	}
	c.metrics.StatusPolls.With("result", status.Result().String()).Add(1)
	c.logger.Debug("polled blob status", "request_id", id, "result", status.Result())

	if status.IsConfirmed() && c.cfg.Validate {
		if err := status.ValidateBasic(); err != nil {
			return status, fmt.Errorf("%w: %s: %w", ErrInvalidVerificationData, id, err)
		}
	}
	if c.journal != nil && id != "" {
		if err := c.journal.UpdateStatus(ctx, id, status); err != nil {
			c.logger.Warn("failed to journal status", "request_id", id, "error", err)
		}
	}
	return status, nil
}

// Retrieve fetches a dispersed blob by its confirmation coordinates. The reply is
// returned as received.
func (c *Client) Retrieve(ctx context.Context, hash types.BatchHeaderHash, blobIndex uint64) ([]byte, error) {
	req, err := encodeRetrieveRequest(hash, blobIndex)
	if err != nil {
		return nil, err
	}
	reply, err := c.invoke(ctx, MethodRetrieveBlob, req)
	if err != nil {
		return nil, fmt.Errorf("retrieve blob %s/%d: %w", hash, blobIndex, err)
	}
	c.metrics.Retrievals.Add(1)
	return reply, nil
}

// invoke dispatches one call. Errors are always *da.TransportError.
func (c *Client) invoke(ctx context.Context, method string, req []byte) ([]byte, error) {
	start := time.Now()
	reply, err := c.invoker.Invoke(ctx, method, req)
	c.metrics.RequestDuration.With("method", method).Observe(time.Since(start).Seconds())
	if err == nil {
		return reply, nil
	}
	c.metrics.TransportErrors.With("method", method).Add(1)
	c.logger.Error("disperser call failed", "method", method, "error", err, "temporary", da.IsTemporary(err))
	var terr *da.TransportError
	if errors.As(err, &terr) {
		return nil, err
	}
	return nil, da.NewTransportError(method, "", err)
}
