package cmd

import (
	"context"
	"fmt"
	"os"

	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rollkit/eigenda-client/da"
	"github.com/rollkit/eigenda-client/da/eigenda"
	"github.com/rollkit/eigenda-client/da/proxy"
	rollconf "github.com/rollkit/eigenda-client/pkg/config"
	"github.com/rollkit/eigenda-client/pkg/log"
	ros "github.com/rollkit/eigenda-client/pkg/os"
	"github.com/rollkit/eigenda-client/pkg/protofiles"
	"github.com/rollkit/eigenda-client/pkg/store"
)

// InvokerProvider builds the transport used by the client commands.
type InvokerProvider func(cfg rollconf.Config, logger log.Logger) (da.Invoker, proxy.Closer, error)

// ParseConfig is an helper that loads the client configuration and validates it.
func ParseConfig(cmd *cobra.Command) (rollconf.Config, error) {
	home, err := cmd.Flags().GetString(rollconf.FlagRootDir)
	if err != nil {
		return rollconf.Config{}, fmt.Errorf("error reading home flag: %w", err)
	}
	cfg, err := rollconf.LoadConfig(cmd, home)
	if err != nil {
		return rollconf.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return rollconf.Config{}, fmt.Errorf("failed to validate config: %w", err)
	}
	return cfg, nil
}

// SetupLogger configures and returns a logger based on the provided configuration.
// It applies the following settings from the config:
//   - Log format (text or JSON)
//   - Log level (debug, info, warn, error)
//   - Stack traces for error logs
//
// Logs always go to stderr; stdout carries command output.
func SetupLogger(config rollconf.LogConfig) (log.Logger, error) {
	json := config.Format == "json"
	levelOpt, err := log.ParseLevelOption(config.Level)
	if err != nil {
		return nil, err
	}
	opts := []log.Option{levelOpt, log.TraceOption(config.Trace)}
	if json {
		opts = append(opts, log.OutputJSONOption())
	}
	if config.Trace {
		return log.NewLogger(os.Stderr, opts...).With("module", "main"), nil
	}
	if err := log.SetupLogging(config.Level, json); err != nil {
		return nil, err
	}
	return log.NewLogger(nil, opts...).With("module", "main"), nil
}

// ClientConfig maps the dispersal section of cfg onto the client configuration.
func ClientConfig(cfg rollconf.Config) (eigenda.Config, error) {
	version, err := eigenda.ParseProtocolVersion(cfg.Dispersal.ProtocolVersion)
	if err != nil {
		return eigenda.Config{}, err
	}
	policy, err := eigenda.ParseParseErrorPolicy(cfg.Dispersal.ParseErrorPolicy)
	if err != nil {
		return eigenda.Config{}, err
	}
	return eigenda.Config{
		ProtocolVersion:    version,
		AdversaryThreshold: cfg.Dispersal.AdversaryThreshold,
		QuorumThreshold:    cfg.Dispersal.QuorumThreshold,
		ParseErrorPolicy:   policy,
		Validate:           cfg.Dispersal.Validate,
		CacheSize:          cfg.Cache.Size,
	}, nil
}

// PollPolicy maps the polling settings of cfg.
func PollPolicy(cfg rollconf.Config) eigenda.PollPolicy {
	return eigenda.PollPolicy{
		Interval:    cfg.Dispersal.PollInterval.Duration,
		MaxAttempts: cfg.Dispersal.MaxPollAttempts,
		Timeout:     cfg.Dispersal.PollTimeout.Duration,
	}
}

// OpenJournal opens the dispersal journal under the root directory. An empty
// store path keeps the journal in memory.
func OpenJournal(cfg rollconf.Config) (*store.Journal, error) {
	if cfg.Store.Path == "" {
		return store.NewJournal(store.NewDefaultInMemoryKVStore()), nil
	}
	db, err := store.NewDefaultKVStore(cfg.RootDir, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return store.NewJournal(db), nil
}

// session is everything a client command needs.
type session struct {
	ctx     context.Context
	cfg     rollconf.Config
	logger  log.Logger
	client  *eigenda.Client
	journal *store.Journal
	closers []func() error
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Warn("error during shutdown", "error", err)
		}
	}
}

// newSession loads the configuration and wires the client with its journal,
// metrics and transport.
func newSession(cmd *cobra.Command, newInvoker InvokerProvider) (_ *session, err error) {
	cfg, err := ParseConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := SetupLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	ctx, cancel := ros.SignalContext(cmd.Context(), logger)
	s := &session{ctx: ctx, cfg: cfg, logger: logger}
	s.closers = append(s.closers, func() error { cancel(); return nil })
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	clientCfg, err := ClientConfig(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.DA.Transport == rollconf.TransportGrpcurl {
		if dir := cfg.ResolvePath(cfg.DA.ProtoPath); !protofiles.Present(dir) {
			return nil, fmt.Errorf("proto files missing in %s, run init first", dir)
		}
	}

	journal, err := OpenJournal(cfg)
	if err != nil {
		return nil, err
	}
	s.journal = journal
	s.closers = append(s.closers, journal.Close)

	metrics := eigenda.NopMetrics()
	if cfg.Instrumentation.IsPrometheusEnabled() {
		reg := stdprometheus.NewRegistry()
		metrics = eigenda.PrometheusMetrics(reg, cfg.Instrumentation.Namespace)
		stop, err := StartMetricsServer(cfg.Instrumentation.PrometheusListenAddr, reg, logger)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, stop)
	}

	invoker, closeInvoker, err := newInvoker(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	s.closers = append(s.closers, closeInvoker)

	s.client, err = eigenda.NewClient(invoker, clientCfg,
		eigenda.WithLogger(logger),
		eigenda.WithMetrics(metrics),
		eigenda.WithJournal(journal),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
