package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

const (
	// FlagRootDir is a flag for specifying the root directory
	FlagRootDir = "home"

	// FlagDAAddress is a flag for specifying the disperser address
	FlagDAAddress = "da.address"
	// FlagDATransport is a flag for selecting the transport (grpcurl, grpc, http)
	FlagDATransport = "da.transport"
	// FlagDAProtoPath is a flag for specifying the proto import path
	FlagDAProtoPath = "da.proto_path"
	// FlagDADisperserProto is a flag for specifying the disperser proto file
	FlagDADisperserProto = "da.disperser_proto"
	// FlagDAGrpcurlBin is a flag for specifying the grpcurl binary
	FlagDAGrpcurlBin = "da.grpcurl_bin"
	// FlagDAPlaintext is a flag for disabling TLS
	FlagDAPlaintext = "da.plaintext"
	// FlagDAAuthToken is a flag for specifying the disperser auth token
	FlagDAAuthToken = "da.auth_token" // #nosec G101
	// FlagDATimeout is a flag for specifying the per call timeout
	FlagDATimeout = "da.timeout"

	// FlagProtocolVersion is a flag for selecting the payload shape (v1, v2)
	FlagProtocolVersion = "dispersal.protocol_version"
	// FlagQuorumID is a flag for specifying the default quorum
	FlagQuorumID = "dispersal.quorum_id"
	// FlagAdversaryThreshold is a flag for specifying the adversary threshold percentage
	FlagAdversaryThreshold = "dispersal.adversary_threshold"
	// FlagQuorumThreshold is a flag for specifying the quorum threshold percentage
	FlagQuorumThreshold = "dispersal.quorum_threshold"
	// FlagPollInterval is a flag for specifying the delay between status polls
	FlagPollInterval = "dispersal.poll_interval"
	// FlagMaxPollAttempts is a flag for capping the number of status polls
	FlagMaxPollAttempts = "dispersal.max_poll_attempts"
	// FlagPollTimeout is a flag for specifying an overall polling deadline
	FlagPollTimeout = "dispersal.poll_timeout"
	// FlagParseErrorPolicy is a flag for selecting how malformed responses are handled
	FlagParseErrorPolicy = "dispersal.parse_error_policy"
	// FlagValidate is a flag for enabling structural validation of confirmations
	FlagValidate = "dispersal.validate"

	// FlagCacheSize is a flag for specifying the response cache capacity
	FlagCacheSize = "cache.size"
	// FlagStorePath is a flag for specifying the journal directory
	FlagStorePath = "store.path"

	// FlagPrometheus is a flag for enabling Prometheus metrics
	FlagPrometheus = "instrumentation.prometheus"
	// FlagPrometheusListenAddr is a flag for specifying the Prometheus listen address
	FlagPrometheusListenAddr = "instrumentation.prometheus_listen_addr"

	// FlagLogLevel is a flag for specifying the log level
	FlagLogLevel = "log.level"
	// FlagLogFormat is a flag for specifying the log format
	FlagLogFormat = "log.format"
	// FlagLogTrace is a flag for enabling stack traces in error logs
	FlagLogTrace = "log.trace"
)

// Transport kinds.
const (
	TransportGrpcurl = "grpcurl"
	TransportGRPC    = "grpc"
	TransportHTTP    = "http"
)

// Parse error policies.
const (
	ParsePolicyDefault = "default"
	ParsePolicyError   = "error"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// DurationWrapper is a wrapper for time.Duration that implements encoding.TextMarshaler and encoding.TextUnmarshaler
// needed for YAML marshalling/unmarshalling especially for time.Duration
type DurationWrapper struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler to format the duration as text
func (d DurationWrapper) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler to parse the duration from text
func (d *DurationWrapper) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Config stores the client configuration.
type Config struct {
	RootDir string `mapstructure:"-" yaml:"-" comment:"Root directory where client files are located"`

	DA              DAConfig               `mapstructure:"da" yaml:"da"`
	Dispersal       DispersalConfig        `mapstructure:"dispersal" yaml:"dispersal"`
	Cache           CacheConfig            `mapstructure:"cache" yaml:"cache"`
	Store           StoreConfig            `mapstructure:"store" yaml:"store"`
	Instrumentation *InstrumentationConfig `mapstructure:"instrumentation" yaml:"instrumentation"`
	Log             LogConfig              `mapstructure:"log" yaml:"log"`
}

// DAConfig describes how the disperser is reached.
type DAConfig struct {
	Address        string          `mapstructure:"address" yaml:"address" comment:"Disperser endpoint. host:port for grpcurl and grpc, a base URL for http."`
	Transport      string          `mapstructure:"transport" yaml:"transport" comment:"Transport used to talk to the disperser (grpcurl, grpc, http)."`
	ProtoPath      string          `mapstructure:"proto_path" yaml:"proto_path" comment:"Import path holding the disperser proto files. Relative paths are resolved against the root directory."`
	DisperserProto string          `mapstructure:"disperser_proto" yaml:"disperser_proto" comment:"Disperser proto file, relative to proto_path."`
	GrpcurlBin     string          `mapstructure:"grpcurl_bin" yaml:"grpcurl_bin" comment:"grpcurl executable."`
	Plaintext      bool            `mapstructure:"plaintext" yaml:"plaintext" comment:"Disable TLS."`
	AuthToken      string          `mapstructure:"auth_token" yaml:"auth_token" comment:"Bearer token sent with every call."`
	Timeout        DurationWrapper `mapstructure:"timeout" yaml:"timeout" comment:"Timeout of a single call (duration). Examples: \"30s\", \"1m\"."`
}

// DispersalConfig holds the dispersal and polling parameters.
type DispersalConfig struct {
	ProtocolVersion    string          `mapstructure:"protocol_version" yaml:"protocol_version" comment:"Payload shape (v1 carries data only, v2 adds security parameters)."`
	QuorumID           uint32          `mapstructure:"quorum_id" yaml:"quorum_id" comment:"Quorum blobs are dispersed to by default."`
	AdversaryThreshold uint32          `mapstructure:"adversary_threshold" yaml:"adversary_threshold" comment:"Adversary threshold percentage."`
	QuorumThreshold    uint32          `mapstructure:"quorum_threshold" yaml:"quorum_threshold" comment:"Quorum threshold percentage. Must be greater than the adversary threshold and at most 100."`
	PollInterval       DurationWrapper `mapstructure:"poll_interval" yaml:"poll_interval" comment:"Delay between status polls (duration)."`
	MaxPollAttempts    int             `mapstructure:"max_poll_attempts" yaml:"max_poll_attempts" comment:"Maximum number of status polls. 0 disables the cap, poll_timeout must then be set."`
	PollTimeout        DurationWrapper `mapstructure:"poll_timeout" yaml:"poll_timeout" comment:"Overall polling deadline (duration). 0 disables it."`
	ParseErrorPolicy   string          `mapstructure:"parse_error_policy" yaml:"parse_error_policy" comment:"Malformed responses either fall back to defaults (default) or fail the call (error)."`
	Validate           bool            `mapstructure:"validate" yaml:"validate" comment:"Structurally validate confirmation data."`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	Size int `mapstructure:"size" yaml:"size" comment:"Number of dispersal responses kept in memory."`
}

// StoreConfig configures the dispersal journal.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path" comment:"Journal directory. Relative paths are resolved against the root directory. Empty keeps the journal in memory."`
}

// LogConfig contains all logging configuration parameters
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" comment:"Log level (debug, info, warn, error)"`
	Format string `mapstructure:"format" yaml:"format" comment:"Log format (text, json)"`
	Trace  bool   `mapstructure:"trace" yaml:"trace" comment:"Enable stack traces in error logs"`
}

// ResolvePath makes p absolute relative to the root directory.
func (c Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.RootDir, p)
}

// Validate checks every section and reports all problems at once.
func (c Config) Validate() error {
	var err error
	fail := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf(format, args...))
	}

	if c.DA.Address == "" {
		fail("da.address must not be empty")
	}
	switch c.DA.Transport {
	case TransportGrpcurl:
		if c.DA.GrpcurlBin == "" {
			fail("da.grpcurl_bin must not be empty")
		}
	case TransportGRPC, TransportHTTP:
	default:
		fail("da.transport: unknown transport %q", c.DA.Transport)
	}
	if c.DA.Timeout.Duration < 0 {
		fail("da.timeout must not be negative")
	}

	d := c.Dispersal
	switch d.ProtocolVersion {
	case "v1", "v2":
	default:
		fail("dispersal.protocol_version: unknown version %q", d.ProtocolVersion)
	}
	if d.AdversaryThreshold >= d.QuorumThreshold || d.QuorumThreshold > 100 {
		fail("dispersal thresholds must satisfy adversary (%d) < quorum (%d) <= 100", d.AdversaryThreshold, d.QuorumThreshold)
	}
	if d.PollInterval.Duration <= 0 {
		fail("dispersal.poll_interval must be positive")
	}
	if d.MaxPollAttempts < 0 {
		fail("dispersal.max_poll_attempts must not be negative")
	}
	if d.PollTimeout.Duration < 0 {
		fail("dispersal.poll_timeout must not be negative")
	}
	if d.MaxPollAttempts == 0 && d.PollTimeout.Duration == 0 {
		fail("dispersal polling is unbounded: set max_poll_attempts or poll_timeout")
	}
	switch d.ParseErrorPolicy {
	case ParsePolicyDefault, ParsePolicyError:
	default:
		fail("dispersal.parse_error_policy: unknown policy %q", d.ParseErrorPolicy)
	}

	if c.Cache.Size <= 0 {
		fail("cache.size must be positive")
	}
	if c.Instrumentation != nil {
		if vErr := c.Instrumentation.ValidateBasic(); vErr != nil {
			fail("instrumentation: %w", vErr)
		}
	}
	if _, lErr := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); lErr != nil {
		fail("log.level: %w", lErr)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		fail("log.format: unknown format %q", c.Log.Format)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// AddGlobalFlags registers the flags shared by every command: logging and the
// root directory.
func AddGlobalFlags(cmd *cobra.Command, appName string) {
	def := DefaultConfig
	cmd.PersistentFlags().String(FlagLogLevel, def.Log.Level, "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String(FlagLogFormat, def.Log.Format, "Set the log format (text, json)")
	cmd.PersistentFlags().Bool(FlagLogTrace, def.Log.Trace, "Enable stack traces in error logs")
	cmd.PersistentFlags().String(FlagRootDir, DefaultRootDirWithName(appName), "Root directory for client data")
}

// AddFlags adds the client configuration options to cmd as persistent flags.
func AddFlags(cmd *cobra.Command) {
	def := DefaultConfig
	flags := cmd.PersistentFlags()

	flags.String(FlagDAAddress, def.DA.Address, "disperser address")
	flags.String(FlagDATransport, def.DA.Transport, "transport (grpcurl, grpc, http)")
	flags.String(FlagDAProtoPath, def.DA.ProtoPath, "proto import path")
	flags.String(FlagDADisperserProto, def.DA.DisperserProto, "disperser proto file relative to the import path")
	flags.String(FlagDAGrpcurlBin, def.DA.GrpcurlBin, "grpcurl executable")
	flags.Bool(FlagDAPlaintext, def.DA.Plaintext, "disable TLS")
	flags.String(FlagDAAuthToken, def.DA.AuthToken, "disperser auth token")
	flags.Duration(FlagDATimeout, def.DA.Timeout.Duration, "timeout of a single call")

	flags.String(FlagProtocolVersion, def.Dispersal.ProtocolVersion, "payload protocol version (v1, v2)")
	flags.Uint32(FlagQuorumID, def.Dispersal.QuorumID, "default quorum id")
	flags.Uint32(FlagAdversaryThreshold, def.Dispersal.AdversaryThreshold, "adversary threshold percentage")
	flags.Uint32(FlagQuorumThreshold, def.Dispersal.QuorumThreshold, "quorum threshold percentage")
	flags.Duration(FlagPollInterval, def.Dispersal.PollInterval.Duration, "delay between status polls")
	flags.Int(FlagMaxPollAttempts, def.Dispersal.MaxPollAttempts, "maximum number of status polls")
	flags.Duration(FlagPollTimeout, def.Dispersal.PollTimeout.Duration, "overall polling deadline (0 disables)")
	flags.String(FlagParseErrorPolicy, def.Dispersal.ParseErrorPolicy, "malformed response handling (default, error)")
	flags.Bool(FlagValidate, def.Dispersal.Validate, "validate confirmation data")

	flags.Int(FlagCacheSize, def.Cache.Size, "response cache capacity")
	flags.String(FlagStorePath, def.Store.Path, "journal directory (empty keeps it in memory)")

	instrDef := DefaultInstrumentationConfig()
	flags.Bool(FlagPrometheus, instrDef.Prometheus, "enable Prometheus metrics")
	flags.String(FlagPrometheusListenAddr, instrDef.PrometheusListenAddr, "Prometheus metrics listen address")
}

// LoadConfig loads the configuration in the following order of precedence:
// 1. DefaultConfig (lowest priority)
// 2. YAML configuration file in home
// 3. Command line flags (highest priority)
func LoadConfig(cmd *cobra.Command, home string) (Config, error) {
	v := viper.New()
	config := DefaultConfig
	config.Instrumentation = DefaultInstrumentationConfig()
	setDefaultsInViper(v, config)

	if home != "" {
		config.RootDir = home
		v.SetConfigName(ConfigBaseName)
		v.SetConfigType(ConfigExtension)
		v.AddConfigPath(home)

		if err := v.ReadInConfig(); err != nil {
			var configFileNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFound) {
				return config, fmt.Errorf("error reading YAML configuration: %w", err)
			}
		}
	}

	var flagErrs error
	bind := func(f *pflag.Flag) {
		if f.Name == FlagRootDir {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			flagErrs = multierror.Append(flagErrs, err)
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)
	if flagErrs != nil {
		return config, fmt.Errorf("unable to bind flags: %w", flagErrs)
	}

	if err := v.Unmarshal(&config, decoderOptions); err != nil {
		return config, fmt.Errorf("unable to decode configuration: %w", err)
	}
	return config, nil
}

func decoderOptions(c *mapstructure.DecoderConfig) {
	c.TagName = "mapstructure"
	c.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
			if t != reflect.TypeOf(DurationWrapper{}) {
				return data, nil
			}
			switch v := data.(type) {
			case string:
				duration, err := time.ParseDuration(v)
				if err != nil {
					return nil, err
				}
				return DurationWrapper{Duration: duration}, nil
			case time.Duration:
				return DurationWrapper{Duration: v}, nil
			}
			return data, nil
		},
	)
}

// setDefaultsInViper registers every field of config as a viper default under
// its dotted mapstructure key.
func setDefaultsInViper(v *viper.Viper, config Config) {
	var walk func(prefix string, rv reflect.Value)
	walk = func(prefix string, rv reflect.Value) {
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return
			}
			rv = rv.Elem()
		}
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			tag := field.Tag.Get("mapstructure")
			if tag == "" || tag == "-" || !field.IsExported() {
				continue
			}
			key := tag
			if prefix != "" {
				key = prefix + "." + tag
			}
			fv := rv.Field(i)
			if d, ok := fv.Interface().(DurationWrapper); ok {
				v.SetDefault(key, d.String())
				continue
			}
			if fv.Kind() == reflect.Struct || (fv.Kind() == reflect.Pointer && fv.Elem().Kind() == reflect.Struct) {
				walk(key, fv)
				continue
			}
			v.SetDefault(key, fv.Interface())
		}
	}
	walk("", reflect.ValueOf(config))
}
