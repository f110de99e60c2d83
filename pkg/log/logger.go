package log

import (
	"io"
	"os"
	"strings"

	ipfslog "github.com/ipfs/go-log/v2"
	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultSubsystem is the go-log subsystem the client logs under.
const DefaultSubsystem = "eigenda"

// Logger is the structured logger used across the client.
type Logger interface {
	// Info takes a message and a set of key/value pairs and logs with level INFO.
	// The key of the tuple must be a string.
	Info(msg string, keyVals ...any)

	// Warn takes a message and a set of key/value pairs and logs with level WARN.
	Warn(msg string, keyVals ...any)

	// Error takes a message and a set of key/value pairs and logs with level ERR.
	Error(msg string, keyVals ...any)

	// Debug takes a message and a set of key/value pairs and logs with level DEBUG.
	Debug(msg string, keyVals ...any)

	// With returns a new wrapped logger with additional context provided by a set.
	With(keyVals ...any) Logger

	// Impl returns the underlying *ipfslog.ZapEventLogger.
	Impl() any
}

type zapLogger struct {
	logger *ipfslog.ZapEventLogger
}

// Config holds logger configuration.
type Config struct {
	Level      zapcore.Level
	EnableJSON bool
	Trace      bool
}

// Option defines configuration options for the logger.
type Option func(*Config)

// NewLogger creates a logger writing to dst. A nil dst or os.Stdout routes
// through the process wide go-log subsystem so SetupLogging applies to it.
func NewLogger(dst io.Writer, options ...Option) Logger {
	config := &Config{Level: zapcore.InfoLevel}
	for _, opt := range options {
		opt(config)
	}

	if dst == nil || dst == os.Stdout {
		_ = ipfslog.SetLogLevel(DefaultSubsystem, config.Level.String())
		return &zapLogger{logger: ipfslog.Logger(DefaultSubsystem)}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if config.EnableJSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var zapOpts []zap.Option
	if config.Trace {
		zapOpts = append(zapOpts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(dst), config.Level)
	sugared := zap.New(core, zapOpts...).Named(DefaultSubsystem).Sugar()
	return &zapLogger{logger: &ipfslog.ZapEventLogger{SugaredLogger: *sugared}}
}

// NewNopLogger creates a no-op logger.
func NewNopLogger() Logger {
	sugared := zap.New(zapcore.NewNopCore()).Sugar()
	return &zapLogger{logger: &ipfslog.ZapEventLogger{SugaredLogger: *sugared}}
}

// NewTestLogger creates a debug level logger that writes through t.Log.
func NewTestLogger(t TestingT) Logger {
	return NewLogger(testWriter{t}, LevelOption(zerolog.DebugLevel))
}

// SetupLogging configures the go-log backend for the whole process.
func SetupLogging(level string, json bool) error {
	lvl, err := ipfslog.LevelFromString(strings.ToLower(level))
	if err != nil {
		return err
	}
	format := ipfslog.PlaintextOutput
	if json {
		format = ipfslog.JSONOutput
	}
	ipfslog.SetupLogging(ipfslog.Config{
		Format: format,
		Stderr: true,
		Level:  lvl,
	})
	return nil
}

func (z *zapLogger) Info(msg string, keyVals ...any) {
	z.logger.Infow(msg, keyVals...)
}

func (z *zapLogger) Warn(msg string, keyVals ...any) {
	z.logger.Warnw(msg, keyVals...)
}

func (z *zapLogger) Error(msg string, keyVals ...any) {
	z.logger.Errorw(msg, keyVals...)
}

func (z *zapLogger) Debug(msg string, keyVals ...any) {
	z.logger.Debugw(msg, keyVals...)
}

func (z *zapLogger) With(keyVals ...any) Logger {
	sugared := z.logger.With(keyVals...)
	return &zapLogger{logger: &ipfslog.ZapEventLogger{SugaredLogger: *sugared}}
}

func (z *zapLogger) Impl() any {
	return z.logger
}

// OutputJSONOption enables JSON output format.
func OutputJSONOption() Option {
	return func(c *Config) {
		c.EnableJSON = true
	}
}

// LevelOption sets the log level.
func LevelOption(level zerolog.Level) Option {
	return func(c *Config) {
		switch level {
		case zerolog.DebugLevel, zerolog.TraceLevel:
			c.Level = zapcore.DebugLevel
		case zerolog.WarnLevel:
			c.Level = zapcore.WarnLevel
		case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
			c.Level = zapcore.ErrorLevel
		default:
			c.Level = zapcore.InfoLevel
		}
	}
}

// ParseLevelOption parses a textual level ("debug", "info", ...) into an Option.
func ParseLevelOption(level string) (Option, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	return LevelOption(lvl), nil
}

// TraceOption enables stack traces on error level entries.
func TraceOption(enabled bool) Option {
	return func(c *Config) {
		c.Trace = enabled
	}
}

// TestingT is the subset of testing.TB the test logger needs.
type TestingT interface {
	Log(args ...any)
	Helper()
}

type testWriter struct {
	t TestingT
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
