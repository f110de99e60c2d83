package da

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestTransportErrorMessage(t *testing.T) {
	cases := []struct {
		name     string
		err      *TransportError
		expected string
	}{
		{"with method", NewTransportError("disperser.Disperser/DisperseBlob", "connection refused", nil), "transport: disperser.Disperser/DisperseBlob: connection refused"},
		{"without method", NewTransportError("", "boom", nil), "transport: boom"},
		{"falls back to cause", NewTransportError("m", "", errors.New("exit status 1")), "transport: m: exit status 1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, c.err.Error())
		})
	}
}

func TestTransportErrorMatching(t *testing.T) {
	cause := errors.New("cause")
	wrapped := fmt.Errorf("disperse: %w", NewTransportError("m", "msg", cause))

	var te *TransportError
	require.True(t, errors.As(wrapped, &te))
	assert.Equal(t, "msg", te.Message)
	assert.ErrorIs(t, wrapped, cause)
}

func TestFromStatusError(t *testing.T) {
	assert.Nil(t, FromStatusError("m", nil))

	te := FromStatusError("m", status.Error(codes.Unavailable, "connection refused"))
	assert.Equal(t, codes.Unavailable, te.Code)
	assert.Equal(t, "connection refused", te.Message)
	assert.True(t, te.Temporary())
	assert.True(t, IsTemporary(fmt.Errorf("wrap: %w", te)))

	te = FromStatusError("m", errors.New("plain"))
	assert.Equal(t, codes.Unknown, te.Code)
	assert.False(t, te.Temporary())

	orig := NewTransportError("m", "x", nil)
	assert.Same(t, orig, FromStatusError("other", fmt.Errorf("w: %w", orig)))
	assert.Equal(t, codes.InvalidArgument, status.Code(&TransportError{Code: codes.InvalidArgument}))
}

func TestInvokerFunc(t *testing.T) {
	var inv Invoker = InvokerFunc(func(_ context.Context, method string, req []byte) ([]byte, error) {
		return append([]byte(method+":"), req...), nil
	})
	out, err := inv.Invoke(context.Background(), "m", []byte("r"))
	require.NoError(t, err)
	assert.Equal(t, "m:r", string(out))
}
