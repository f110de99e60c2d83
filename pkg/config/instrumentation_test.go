package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultInstrumentationConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultInstrumentationConfig()

	assert.False(t, cfg.Prometheus)
	assert.Equal(t, ":26660", cfg.PrometheusListenAddr)
	assert.Equal(t, "eigenda", cfg.Namespace)
}

func TestInstrumentationConfigValidateBasic(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		cfg       *InstrumentationConfig
		expectErr bool
	}{
		{"disabled", &InstrumentationConfig{}, false},
		{"enabled", &InstrumentationConfig{Prometheus: true, PrometheusListenAddr: ":26660"}, false},
		{"enabled without address", &InstrumentationConfig{Prometheus: true}, true},
		{"enabled with bad address", &InstrumentationConfig{Prometheus: true, PrometheusListenAddr: "26660"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.ValidateBasic()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPrometheusEnabled(t *testing.T) {
	t.Parallel()

	var nilCfg *InstrumentationConfig
	assert.False(t, nilCfg.IsPrometheusEnabled())
	assert.False(t, (&InstrumentationConfig{Prometheus: true}).IsPrometheusEnabled())
	assert.True(t, (&InstrumentationConfig{Prometheus: true, PrometheusListenAddr: ":1"}).IsPrometheusEnabled())
}
