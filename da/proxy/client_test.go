package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dagrpc "github.com/rollkit/eigenda-client/da/grpc"
	"github.com/rollkit/eigenda-client/da/grpcurl"
	"github.com/rollkit/eigenda-client/da/rest"
	"github.com/rollkit/eigenda-client/pkg/config"
)

func TestNewInvoker(t *testing.T) {
	cases := []struct {
		name      string
		transport string
		address   string
		check     func(t *testing.T, v any)
	}{
		{"grpcurl", config.TransportGrpcurl, "localhost:5000", func(t *testing.T, v any) {
			inv, ok := v.(*grpcurl.Invoker)
			require.True(t, ok)
			args := inv.Args("m", []byte("{}"))
			assert.Contains(t, args, "localhost:5000")
			assert.Contains(t, args, "/home/proto")
		}},
		{"grpc", config.TransportGRPC, "grpc://localhost:5000", func(t *testing.T, v any) {
			_, ok := v.(*dagrpc.Client)
			assert.True(t, ok)
		}},
		{"http", config.TransportHTTP, "http://localhost:5000", func(t *testing.T, v any) {
			_, ok := v.(*rest.Client)
			assert.True(t, ok)
		}},
		{"inferred grpc", "", "grpc://localhost:5000", func(t *testing.T, v any) {
			_, ok := v.(*dagrpc.Client)
			assert.True(t, ok)
		}},
		{"inferred http", "", "https://disperser.example.com", func(t *testing.T, v any) {
			_, ok := v.(*rest.Client)
			assert.True(t, ok)
		}},
		{"inferred grpcurl", "", "disperser-holesky.eigenda.xyz:443", func(t *testing.T, v any) {
			_, ok := v.(*grpcurl.Invoker)
			assert.True(t, ok)
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := config.DefaultConfig
			cfg.RootDir = "/home"
			cfg.DA.ProtoPath = "proto"
			cfg.DA.Transport = c.transport
			cfg.DA.Address = c.address
			cfg.DA.Plaintext = true

			inv, closer, err := NewInvoker(cfg, nil)
			require.NoError(t, err)
			c.check(t, inv)
			assert.NoError(t, closer())
		})
	}
}

func TestNewInvokerErrors(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.DA.Transport = "carrier-pigeon"
	_, _, err := NewInvoker(cfg, nil)
	assert.ErrorContains(t, err, "unknown transport 'carrier-pigeon'")

	cfg.DA.Transport = config.TransportHTTP
	cfg.DA.Address = ""
	_, _, err = NewInvoker(cfg, nil)
	assert.Error(t, err)
}
