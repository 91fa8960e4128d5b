package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picstash/picstash/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 8787, cfg.Server.Port)
	assert.Equal(t, int64(0), cfg.Server.MaxUploadSize)
	assert.Equal(t, "./dist", cfg.Server.WebRoot)
	assert.Equal(t, "fs", cfg.Storage.Driver)
	assert.Equal(t, "./data", cfg.Storage.Path)
	assert.True(t, cfg.Storage.S3.UseSSL)
	assert.False(t, cfg.CORS.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
storage:
  driver: memory
log:
  level: debug
`)

	cfg, err := config.Load([]string{path}, nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_FileMergeOrder(t *testing.T) {
	base := writeConfigFile(t, "server:\n  port: 9090\n")
	override := writeConfigFile(t, "server:\n  port: 9091\n")

	cfg, err := config.Load([]string{base, override}, nil)
	require.NoError(t, err)

	assert.Equal(t, 9091, cfg.Server.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 9090\n")
	t.Setenv("PICSTASH_SERVER_PORT", "9999")

	cfg, err := config.Load([]string{path}, nil)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("PICSTASH_STORAGE_DRIVER", "fs")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("storage-driver", "", "")
	require.NoError(t, flags.Set("storage-driver", "memory"))

	cfg, err := config.Load(nil, flags)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoad_UnchangedFlagIsIgnored(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("storage-driver", "s3", "")

	cfg, err := config.Load(nil, flags)
	require.NoError(t, err)

	// The default value of an unset flag must not override config defaults.
	assert.Equal(t, "fs", cfg.Storage.Driver)
}

func TestLoad_InvalidDriver(t *testing.T) {
	path := writeConfigFile(t, "storage:\n  driver: floppy\n")

	_, err := config.Load([]string{path}, nil)
	assert.ErrorContains(t, err, "validate config")
}

func TestLoad_InvalidPort(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 70000\n")

	_, err := config.Load([]string{path}, nil)
	assert.ErrorContains(t, err, "validate config")
}

func TestLoad_S3RequiresEndpointAndBucket(t *testing.T) {
	path := writeConfigFile(t, "storage:\n  driver: s3\n")

	_, err := config.Load([]string{path}, nil)
	assert.ErrorContains(t, err, "storage.s3.endpoint")
}

func TestConfigContext(t *testing.T) {
	cfg := &config.Config{}
	ctx := config.WithContext(context.Background(), cfg)

	got, err := config.FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, cfg, got)

	_, err = config.FromContext(context.Background())
	assert.Error(t, err)
}
