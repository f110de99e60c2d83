// Package grpcurl implements da.Invoker by running the grpcurl command line tool
// against the disperser, one process per call.
package grpcurl

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rollkit/eigenda-client/da"
	"github.com/rollkit/eigenda-client/pkg/log"
)

// DefaultBinary is the grpcurl executable looked up on PATH.
const DefaultBinary = "grpcurl"

// Config describes how grpcurl is invoked.
type Config struct {
	// Binary is the grpcurl executable.
	Binary string
	// Address is the disperser host:port.
	Address string
	// ImportPath is the directory the proto files live in.
	ImportPath string
	// Proto is the disperser proto file, relative to ImportPath.
	Proto string
	// Plaintext disables TLS.
	Plaintext bool
	// AuthToken, when set, is sent as a bearer authorization header.
	AuthToken string
	// Timeout bounds a single call; zero means the context alone decides.
	Timeout time.Duration
}

var _ da.Invoker = (*Invoker)(nil)

// Invoker runs grpcurl for each call.
type Invoker struct {
	cfg    Config
	logger log.Logger
}

// NewInvoker returns an Invoker for cfg.
func NewInvoker(cfg Config, logger log.Logger) *Invoker {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Invoker{cfg: cfg, logger: logger.With("module", "grpcurl")}
}

// Args returns the grpcurl arguments for a call.
func (i *Invoker) Args(method string, request []byte) []string {
	args := make([]string, 0, 12)
	if i.cfg.Plaintext {
		args = append(args, "-plaintext")
	}
	if i.cfg.ImportPath != "" {
		args = append(args, "-import-path", i.cfg.ImportPath)
	}
	if i.cfg.Proto != "" {
		args = append(args, "-proto", filepath.ToSlash(i.cfg.Proto))
	}
	if i.cfg.AuthToken != "" {
		args = append(args, "-H", "authorization: Bearer "+i.cfg.AuthToken)
	}
	if i.cfg.Timeout > 0 {
		args = append(args, "-max-time", formatSeconds(i.cfg.Timeout))
	}
	args = append(args, "-d", string(request), i.cfg.Address, method)
	return args
}

// Invoke runs grpcurl and returns its stdout. A non-zero exit yields a
// *da.TransportError carrying stderr verbatim.
func (i *Invoker) Invoke(ctx context.Context, method string, request []byte) ([]byte, error) {
	if i.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.cfg.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, i.cfg.Binary, i.Args(method, request)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	i.logger.Debug("grpcurl finished", "method", method, "took", time.Since(start), "err", err)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, da.NewTransportError(method, ctxErr.Error(), ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if msg == "" || !errors.As(err, &exitErr) {
			msg = strings.TrimSpace(strings.Join([]string{msg, err.Error()}, " "))
		}
		return nil, da.NewTransportError(method, msg, err)
	}
	return stdout.Bytes(), nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
