package config

import (
	"errors"
	"net"
)

// InstrumentationConfig defines the configuration for metrics reporting.
type InstrumentationConfig struct {
	// When true, Prometheus metrics are served under /metrics on
	// PrometheusListenAddr.
	Prometheus bool `mapstructure:"prometheus" yaml:"prometheus" comment:"Enable Prometheus metrics"`

	// Address to listen for Prometheus collector(s) connections.
	PrometheusListenAddr string `mapstructure:"prometheus_listen_addr" yaml:"prometheus_listen_addr" comment:"Address to listen for Prometheus metrics"`

	// Instrumentation namespace.
	Namespace string `mapstructure:"namespace" yaml:"namespace" comment:"Namespace for metrics"`
}

// DefaultInstrumentationConfig returns a default configuration for metrics
// reporting.
func DefaultInstrumentationConfig() *InstrumentationConfig {
	return &InstrumentationConfig{
		Prometheus:           false,
		PrometheusListenAddr: ":26660",
		Namespace:            "eigenda",
	}
}

// ValidateBasic performs basic validation and returns an error if any check fails.
func (cfg *InstrumentationConfig) ValidateBasic() error {
	if !cfg.Prometheus {
		return nil
	}
	if cfg.PrometheusListenAddr == "" {
		return errors.New("prometheus_listen_addr must be set when prometheus is enabled")
	}
	if _, _, err := net.SplitHostPort(cfg.PrometheusListenAddr); err != nil {
		return err
	}
	return nil
}

// IsPrometheusEnabled returns true if Prometheus metrics are enabled.
func (cfg *InstrumentationConfig) IsPrometheusEnabled() bool {
	return cfg != nil && cfg.Prometheus && cfg.PrometheusListenAddr != ""
}
