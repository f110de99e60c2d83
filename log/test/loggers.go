package test

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rollkit/eigenda-client/pkg/log"
)

var _ log.Logger = (*MockLogger)(nil)

// MockLogger records every line so tests can assert on what was logged.
// Loggers derived with With share the recorded lines with their parent.
type MockLogger struct {
	lines *lines
	ctx   []any
}

type lines struct {
	mtx                                        sync.Mutex
	DebugLines, InfoLines, WarnLines, ErrLines []string
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{lines: &lines{}}
}

func (m *MockLogger) record(dst *[]string, msg string, keyvals []any) {
	all := append(append([]any{}, m.ctx...), keyvals...)
	m.lines.mtx.Lock()
	defer m.lines.mtx.Unlock()
	*dst = append(*dst, strings.TrimSpace(fmt.Sprintln(append([]any{msg}, all...)...)))
}

func (m *MockLogger) Debug(msg string, keyvals ...any) {
	m.record(&m.lines.DebugLines, msg, keyvals)
}

func (m *MockLogger) Info(msg string, keyvals ...any) {
	m.record(&m.lines.InfoLines, msg, keyvals)
}

func (m *MockLogger) Warn(msg string, keyvals ...any) {
	m.record(&m.lines.WarnLines, msg, keyvals)
}

func (m *MockLogger) Error(msg string, keyvals ...any) {
	m.record(&m.lines.ErrLines, msg, keyvals)
}

func (m *MockLogger) With(keyvals ...any) log.Logger {
	return &MockLogger{lines: m.lines, ctx: append(append([]any{}, m.ctx...), keyvals...)}
}

func (m *MockLogger) Impl() any {
	return m
}

// DebugLines returns a copy of the recorded debug lines.
func (m *MockLogger) DebugLines() []string {
	return m.snapshot(func(l *lines) []string { return l.DebugLines })
}

// InfoLines returns a copy of the recorded info lines.
func (m *MockLogger) InfoLines() []string {
	return m.snapshot(func(l *lines) []string { return l.InfoLines })
}

// WarnLines returns a copy of the recorded warn lines.
func (m *MockLogger) WarnLines() []string {
	return m.snapshot(func(l *lines) []string { return l.WarnLines })
}

// ErrLines returns a copy of the recorded error lines.
func (m *MockLogger) ErrLines() []string {
	return m.snapshot(func(l *lines) []string { return l.ErrLines })
}

func (m *MockLogger) snapshot(pick func(*lines) []string) []string {
	m.lines.mtx.Lock()
	defer m.lines.mtx.Unlock()
	return append([]string(nil), pick(m.lines)...)
}
