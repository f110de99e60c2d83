package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rollkit/eigenda-client/da"
)

var _ da.Invoker = (*Invoker)(nil)

// Invoker is a testify mock for da.Invoker. Expectations are keyed on the method
// name and the JSON request.
type Invoker struct {
	mock.Mock
}

// Invoke records the call and returns the configured response.
func (m *Invoker) Invoke(ctx context.Context, method string, request []byte) ([]byte, error) {
	args := m.Called(ctx, method, request)
	var out []byte
	if v := args.Get(0); v != nil {
		switch r := v.(type) {
		case []byte:
			out = r
		case string:
			out = []byte(r)
		}
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		return out, args.Error(1)
	}
}
