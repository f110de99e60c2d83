package da

import "context"

// Invoker performs one request/response exchange with the disperser.
// method is the fully qualified RPC name, e.g. "disperser.Disperser/DisperseBlob";
// request and response are JSON documents. Implementations return *TransportError
// when the remote side or the transport itself rejects the call.
type Invoker interface {
	Invoke(ctx context.Context, method string, request []byte) ([]byte, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, method string, request []byte) ([]byte, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, method string, request []byte) ([]byte, error) {
	return f(ctx, method, request)
}
