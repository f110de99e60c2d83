package grpcurl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollkit/eigenda-client/da"
)

// fakeGrpcurl writes a shell script standing in for grpcurl.
func fakeGrpcurl(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "grpcurl")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestArgs(t *testing.T) {
	cases := []struct {
		name     string
		cfg      Config
		expected []string
	}{
		{
			name: "tls",
			cfg:  Config{Address: "disperser-holesky.eigenda.xyz:443", ImportPath: "/p", Proto: "disperser/disperser.proto"},
			expected: []string{"-import-path", "/p", "-proto", "disperser/disperser.proto",
				"-d", `{"request_id":"abc"}`, "disperser-holesky.eigenda.xyz:443", "disperser.Disperser/GetBlobStatus"},
		},
		{
			name: "plaintext with token and timeout",
			cfg:  Config{Address: "localhost:51001", Plaintext: true, AuthToken: "secret", Timeout: 1500 * time.Millisecond},
			expected: []string{"-plaintext", "-H", "authorization: Bearer secret", "-max-time", "1.5",
				"-d", `{"request_id":"abc"}`, "localhost:51001", "disperser.Disperser/GetBlobStatus"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			inv := NewInvoker(c.cfg, nil)
			assert.Equal(t, c.expected, inv.Args("disperser.Disperser/GetBlobStatus", []byte(`{"request_id":"abc"}`)))
		})
	}
}

func TestInvokeReturnsStdout(t *testing.T) {
	bin := fakeGrpcurl(t, `echo '{"result":"PROCESSING","requestId":"aWQ="}'`)
	inv := NewInvoker(Config{Binary: bin, Address: "localhost:1"}, nil)

	out, err := inv.Invoke(context.Background(), "disperser.Disperser/DisperseBlob", []byte(`{}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":"PROCESSING","requestId":"aWQ="}`, string(out))
}

func TestInvokePassesArguments(t *testing.T) {
	bin := fakeGrpcurl(t, `for a in "$@"; do echo "$a"; done`)
	inv := NewInvoker(Config{Binary: bin, Address: "localhost:1", Plaintext: true}, nil)

	out, err := inv.Invoke(context.Background(), "m", []byte(`{"x":1}`))
	require.NoError(t, err)
	assert.Equal(t, "-plaintext\n-d\n{\"x\":1}\nlocalhost:1\nm\n", string(out))
}

func TestInvokeSurfacesStderrVerbatim(t *testing.T) {
	stderr := "Failed to dial target host \"localhost:1\": connection refused"
	bin := fakeGrpcurl(t, `echo 'Failed to dial target host "localhost:1": connection refused' >&2; exit 1`)
	inv := NewInvoker(Config{Binary: bin, Address: "localhost:1"}, nil)

	_, err := inv.Invoke(context.Background(), "disperser.Disperser/DisperseBlob", []byte(`{}`))
	require.Error(t, err)

	var te *da.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, stderr, te.Message)
	assert.Equal(t, "disperser.Disperser/DisperseBlob", te.Method)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestInvokeMissingBinary(t *testing.T) {
	inv := NewInvoker(Config{Binary: filepath.Join(t.TempDir(), "missing")}, nil)

	_, err := inv.Invoke(context.Background(), "m", nil)
	var te *da.TransportError
	require.True(t, errors.As(err, &te))
	assert.NotEmpty(t, te.Message)
}

func TestInvokeHonoursContext(t *testing.T) {
	bin := fakeGrpcurl(t, `exec sleep 5`)
	inv := NewInvoker(Config{Binary: bin}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := inv.Invoke(ctx, "m", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
