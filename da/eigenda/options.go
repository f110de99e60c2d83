package eigenda

import (
	"github.com/rollkit/eigenda-client/pkg/cache"
	"github.com/rollkit/eigenda-client/pkg/log"
	"github.com/rollkit/eigenda-client/types"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics sets the client metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithCache replaces the default LRU response cache.
func WithCache(rc cache.Cache[types.RequestID, types.BlobResponse]) Option {
	return func(c *Client) {
		c.cache = rc
	}
}

// WithJournal records every dispersal and status change in j.
func WithJournal(j Journal) Option {
	return func(c *Client) {
		c.journal = j
	}
}

// WithParser replaces the parser built from Config.ParseErrorPolicy.
func WithParser(p *Parser) Option {
	return func(c *Client) {
		c.parser = p
	}
}
