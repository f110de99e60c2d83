package test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockLoggerRecordsLines(t *testing.T) {
	logger := NewMockLogger()
	child := logger.With("module", "parser")

	logger.Info("hello", "k", "v")
	child.Error("bad response", "raw", "xyz")
	child.Warn("slow")
	logger.Debug("dbg")

	assert.Equal(t, []string{"hello k v"}, logger.InfoLines())
	assert.Equal(t, []string{"bad response module parser raw xyz"}, logger.ErrLines())
	assert.Equal(t, []string{"slow module parser"}, logger.WarnLines())
	assert.Equal(t, []string{"dbg"}, logger.DebugLines())
	assert.Same(t, logger, logger.Impl())
}
