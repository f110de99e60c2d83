// Package rest implements da.Invoker against an HTTP/JSON gateway in front of the
// disperser: each call is a POST of the JSON request to <base>/<method>.
package rest

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/rollkit/eigenda-client/da"
)

var _ da.Invoker = (*Client)(nil)

// Client is a resty backed da.Invoker.
type Client struct {
	c *resty.Client
}

// NewClient returns a Client posting to baseURL.
func NewClient(baseURL string, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("rest: empty base url")
	}
	c := &Client{c: resty.New()}
	c.c.SetBaseURL(strings.TrimRight(baseURL, "/"))
	c.c.SetHeader("Content-Type", "application/json")
	c.c.SetHeader("Accept", "application/json")

	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Invoke posts request to the method path. Any non 2xx answer becomes a
// *da.TransportError whose message is the response body.
func (c *Client) Invoke(ctx context.Context, method string, request []byte) ([]byte, error) {
	resp, err := c.c.R().
		SetContext(ctx).
		SetBody(request).
		Post(methodPath(method))
	if err != nil {
		return nil, da.NewTransportError(method, err.Error(), err)
	}
	if resp.IsError() {
		msg := strings.TrimSpace(string(resp.Body()))
		if msg == "" {
			msg = resp.Status()
		}
		return nil, da.NewTransportError(method, msg, fmt.Errorf("http status %d", resp.StatusCode()))
	}
	return resp.Body(), nil
}

func methodPath(method string) string {
	return "/" + strings.TrimLeft(method, "/")
}
