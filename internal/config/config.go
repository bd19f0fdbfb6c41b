// Package config loads followcheck configuration from defaults, an optional
// YAML file, environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultAddr            = ":5555"
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultMaxFiles        = 20
	defaultMaxFileBytes    = 32 << 20
	defaultProfileBaseURL  = "https://www.instagram.com/"
)

// Environment variables read by Load.
const (
	EnvConfigPath     = "FOLLOWCHECK_CONFIG"
	EnvAddr           = "FOLLOWCHECK_ADDR"
	EnvLogLevel       = "FOLLOWCHECK_LOG_LEVEL"
	EnvLogFormat      = "FOLLOWCHECK_LOG_FORMAT"
	EnvProfileBaseURL = "FOLLOWCHECK_PROFILE_BASE_URL"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Upload UploadConfig `yaml:"upload"`
	Report ReportConfig `yaml:"report"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// UploadConfig bounds a single analyze request. Limits apply per field.
type UploadConfig struct {
	MaxFiles     int   `yaml:"max_files" validate:"gt=0"`
	MaxFileBytes int64 `yaml:"max_file_bytes" validate:"gt=0"`
}

type ReportConfig struct {
	ProfileBaseURL string `yaml:"profile_base_url" validate:"required,url"`
}

// Flags holds command-line overrides. Empty fields are ignored.
type Flags struct {
	Addr      string
	LogLevel  string
	LogFormat string
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            defaultAddr,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Upload: UploadConfig{
			MaxFiles:     defaultMaxFiles,
			MaxFileBytes: defaultMaxFileBytes,
		},
		Report: ReportConfig{
			ProfileBaseURL: defaultProfileBaseURL,
		},
	}
}

// Load builds the configuration. path may be empty, in which case
// FOLLOWCHECK_CONFIG is consulted; with neither set no file is read.
func Load(path string, flags Flags) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Server.Addr = getConfigValue(flags.Addr, EnvAddr, cfg.Server.Addr)
	cfg.Log.Level = strings.ToLower(getConfigValue(flags.LogLevel, EnvLogLevel, cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(getConfigValue(flags.LogFormat, EnvLogFormat, cfg.Log.Format))
	cfg.Report.ProfileBaseURL = getConfigValue("", EnvProfileBaseURL, cfg.Report.ProfileBaseURL)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	return nil
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, fieldName(e)+" "+friendlyMessage(e))
	}

	return errors.New(strings.Join(msgs, "; "))
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Report YAML key names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// fieldName drops the root struct name from the namespace, e.g. "log.level".
func fieldName(e validator.FieldError) string {
	_, name, found := strings.Cut(e.Namespace(), ".")
	if !found {
		return e.Field()
	}
	return name
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	default:
		return "is invalid"
	}
}

// getConfigValue returns the first non-empty value from flag, env var, or fallback.
func getConfigValue(flagValue, envKey, fallback string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return fallback
}
