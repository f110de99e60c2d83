package rest

import (
	"fmt"
	"time"
)

// Option configures a Client.
type Option func(*Client) error

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout < 0 {
			return fmt.Errorf("rest: negative timeout %s", timeout)
		}
		c.c.SetTimeout(timeout)
		return nil
	}
}

// WithAuthToken sends token as a bearer authorization header.
func WithAuthToken(token string) Option {
	return func(c *Client) error {
		if token != "" {
			c.c.SetAuthToken(token)
		}
		return nil
	}
}

// WithRetries retries failed requests count times.
func WithRetries(count int, wait time.Duration) Option {
	return func(c *Client) error {
		c.c.SetRetryCount(count).SetRetryWaitTime(wait)
		return nil
	}
}
