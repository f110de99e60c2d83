package proxy

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rollkit/eigenda-client/da"
	dagrpc "github.com/rollkit/eigenda-client/da/grpc"
	"github.com/rollkit/eigenda-client/da/grpcurl"
	"github.com/rollkit/eigenda-client/da/rest"
	"github.com/rollkit/eigenda-client/pkg/config"
	"github.com/rollkit/eigenda-client/pkg/log"
)

// Closer releases the resources held by an invoker.
type Closer func() error

func nopCloser() error { return nil }

// NewInvoker returns the transport selected by cfg.DA.Transport. When the
// transport is empty it is inferred from the address scheme: grpc://, http:// and
// https:// select the gRPC and HTTP transports, anything else uses grpcurl.
func NewInvoker(cfg config.Config, logger log.Logger) (da.Invoker, Closer, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	transport, address := resolve(cfg.DA.Transport, cfg.DA.Address)

	switch transport {
	case config.TransportGrpcurl:
		return grpcurl.NewInvoker(grpcurl.Config{
			Binary:     cfg.DA.GrpcurlBin,
			Address:    address,
			ImportPath: cfg.ResolvePath(cfg.DA.ProtoPath),
			Proto:      cfg.DA.DisperserProto,
			Plaintext:  cfg.DA.Plaintext,
			AuthToken:  cfg.DA.AuthToken,
			Timeout:    cfg.DA.Timeout.Duration,
		}, logger), nopCloser, nil
	case config.TransportGRPC:
		client := dagrpc.NewClient(dagrpc.Config{
			Address:   address,
			Plaintext: cfg.DA.Plaintext,
			AuthToken: cfg.DA.AuthToken,
			Timeout:   cfg.DA.Timeout.Duration,
		}, logger)
		if err := client.Start(); err != nil {
			return nil, nil, fmt.Errorf("starting grpc transport: %w", err)
		}
		return client, client.Stop, nil
	case config.TransportHTTP:
		opts := []rest.Option{rest.WithTimeout(cfg.DA.Timeout.Duration)}
		if cfg.DA.AuthToken != "" {
			opts = append(opts, rest.WithAuthToken(cfg.DA.AuthToken))
		}
		client, err := rest.NewClient(address, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("creating http transport: %w", err)
		}
		return client, nopCloser, nil
	}
	return nil, nil, fmt.Errorf("unknown transport '%s'", transport)
}

func resolve(transport, address string) (string, string) {
	if transport != "" {
		if transport == config.TransportGRPC {
			address = strings.TrimPrefix(address, "grpc://")
		}
		return transport, address
	}
	addr, err := url.Parse(address)
	if err != nil {
		return config.TransportGrpcurl, address
	}
	switch addr.Scheme {
	case "grpc":
		return config.TransportGRPC, addr.Host
	case "http", "https":
		return config.TransportHTTP, address
	}
	return config.TransportGrpcurl, address
}
