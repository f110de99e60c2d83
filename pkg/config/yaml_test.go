package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadYaml(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*Config)
		validate func(t *testing.T, cfg Config)
	}{
		{
			name: "custom values",
			mutate: func(c *Config) {
				c.DA.Address = "localhost:51001"
				c.DA.Plaintext = true
				c.Dispersal.PollInterval = DurationWrapper{2 * time.Second}
				c.Dispersal.ParseErrorPolicy = ParsePolicyError
			},
			validate: func(t *testing.T, cfg Config) {
				assert.Equal(t, "localhost:51001", cfg.DA.Address)
				assert.True(t, cfg.DA.Plaintext)
				assert.Equal(t, 2*time.Second, cfg.Dispersal.PollInterval.Duration)
				assert.Equal(t, ParsePolicyError, cfg.Dispersal.ParseErrorPolicy)
			},
		},
		{
			name:   "defaults",
			mutate: func(*Config) {},
			validate: func(t *testing.T, cfg Config) {
				assert.Equal(t, DefaultConfig.DA, cfg.DA)
				assert.Equal(t, DefaultConfig.Dispersal, cfg.Dispersal)
				assert.Equal(t, DefaultConfig.Cache, cfg.Cache)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := DefaultConfig
			cfg.RootDir = dir
			tc.mutate(&cfg)
			require.NoError(t, WriteYamlConfig(cfg))

			read, err := ReadYaml(dir)
			require.NoError(t, err)
			assert.Equal(t, dir, read.RootDir)
			require.NoError(t, read.Validate())
			tc.validate(t, read)
		})
	}
}

func TestWriteYamlComments(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig
	cfg.RootDir = dir
	require.NoError(t, WriteYamlConfig(cfg))

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Disperser endpoint")
	assert.Contains(t, string(data), "poll_interval: 30s")
}

func TestReadYamlMissing(t *testing.T) {
	_, err := ReadYaml(t.TempDir())
	assert.ErrorIs(t, err, ErrReadYaml)
}

func TestEnsureRoot(t *testing.T) {
	assert.Error(t, EnsureRoot(""))

	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureRoot(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
