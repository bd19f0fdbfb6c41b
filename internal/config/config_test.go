package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfigPath, EnvAddr, EnvLogLevel, EnvLogFormat, EnvProfileBaseURL} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", Flags{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":5555", cfg.Server.Addr)
	assert.Equal(t, "https://www.instagram.com/", cfg.Report.ProfileBaseURL)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  addr: 127.0.0.1:9000
  shutdown_timeout: 3s
log:
  level: debug
  format: console
upload:
  max_files: 5
  max_file_bytes: 1024
`)

	cfg, err := Load(path, Flags{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 5, cfg.Upload.MaxFiles)
	assert.Equal(t, int64(1024), cfg.Upload.MaxFileBytes)
	assert.Equal(t, defaultProfileBaseURL, cfg.Report.ProfileBaseURL)
}

func TestLoad_PathFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigPath, writeConfig(t, "log:\n  level: warn\n"))

	cfg, err := Load("", Flags{})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, ""), Flags{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  addr: :7000\nlog:\n  level: debug\n")
	t.Setenv(EnvAddr, ":8000")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvProfileBaseURL, "https://example.com/u/")

	cfg, err := Load(path, Flags{Addr: ":9000"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "https://example.com/u/", cfg.Report.ProfileBaseURL)
}

func TestLoad_UnknownField(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "server:\n  adress: :7000\n"), Flags{})
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), Flags{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_InvalidFlag(t *testing.T) {
	clearEnv(t)

	_, err := Load("", Flags{LogFormat: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format must be one of: json console")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr is required"},
		{"zero shutdown", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "server.shutdown_timeout must be greater than 0"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level must be one of: debug info warn error"},
		{"zero max files", func(c *Config) { c.Upload.MaxFiles = 0 }, "upload.max_files must be greater than 0"},
		{"negative max bytes", func(c *Config) { c.Upload.MaxFileBytes = -1 }, "upload.max_file_bytes must be greater than 0"},
		{"bad profile url", func(c *Config) { c.Report.ProfileBaseURL = "instagram" }, "report.profile_base_url must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
