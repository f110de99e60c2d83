package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultDirPerm is the default permissions used when creating directories.
	DefaultDirPerm = 0750

	// DefaultDataDir is the default journal directory.
	DefaultDataDir = "data"
	// DefaultProtoDir is the default proto import path.
	DefaultProtoDir = "proto"
	// DefaultDisperserProto is the disperser proto file inside the import path.
	DefaultDisperserProto = "disperser/disperser.proto"

	// DefaultDAAddress is the public holesky disperser.
	DefaultDAAddress = "disperser-holesky.eigenda.xyz:443"
	// DefaultLogLevel is the default log level for the application
	DefaultLogLevel = "info"

	// AppName is used for the default root directory.
	AppName = "eigenda"
	// Version is the current client version
	Version = "0.1.0"
)

// DefaultRootDir returns the default root directory.
func DefaultRootDir() string {
	return DefaultRootDirWithName(AppName)
}

// DefaultRootDirWithName returns ~/.<name>, or "" when the home directory is unknown.
func DefaultRootDirWithName(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "."+name)
}

// DefaultConfig keeps default values of Config. Instrumentation is left nil
// here; LoadConfig fills it with DefaultInstrumentationConfig.
var DefaultConfig = Config{
	RootDir: DefaultRootDir(),
	DA: DAConfig{
		Address:        DefaultDAAddress,
		Transport:      TransportGrpcurl,
		ProtoPath:      DefaultProtoDir,
		DisperserProto: DefaultDisperserProto,
		GrpcurlBin:     "grpcurl",
		Timeout:        DurationWrapper{time.Minute},
	},
	Dispersal: DispersalConfig{
		ProtocolVersion:    "v2",
		QuorumID:           0,
		AdversaryThreshold: 33,
		QuorumThreshold:    55,
		PollInterval:       DurationWrapper{30 * time.Second},
		MaxPollAttempts:    60,
		ParseErrorPolicy:   ParsePolicyDefault,
		Validate:           true,
	},
	Cache: CacheConfig{Size: 1024},
	Store: StoreConfig{Path: DefaultDataDir},
	Log: LogConfig{
		Level:  DefaultLogLevel,
		Format: "text",
	},
}
