package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	ipfslog "github.com/ipfs/go-log/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesToDestination(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelOption(zerolog.DebugLevel))

	logger.Debug("debug line", "key", "value")
	logger.With("module", "client").Info("info line")

	out := buf.String()
	assert.Contains(t, out, "debug line")
	assert.Contains(t, out, "module")
	assert.Contains(t, out, "info line")
	assert.IsType(t, &ipfslog.ZapEventLogger{}, logger.Impl())
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelOption(zerolog.WarnLevel))

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, OutputJSONOption())

	logger.Error("failed", "method", "disperser.Disperser/GetBlobStatus")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "failed", entry["msg"])
	assert.Equal(t, "disperser.Disperser/GetBlobStatus", entry["method"])
	assert.Equal(t, "error", entry["level"])
}

func TestParseLevelOption(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{"warn", false},
		{"error", false},
		{"loud", true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			opt, err := ParseLevelOption(c.in)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, opt)
		})
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	assert.NotNil(t, logger)

	logger.Info("test info")
	logger.Debug("test debug")
	logger.Warn("test warn")
	logger.Error("test error")
	assert.NotNil(t, logger.With("k", "v"))
}

func TestTestLogger(t *testing.T) {
	logger := NewTestLogger(t)
	logger.Debug("visible in verbose test output", "k", 1)
}

func TestSetupLogging(t *testing.T) {
	assert.NoError(t, SetupLogging("debug", false))
	assert.NoError(t, SetupLogging("info", true))
	assert.Error(t, SetupLogging("nope", false))
}
