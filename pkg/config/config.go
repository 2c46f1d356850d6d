// Package config loads archflow settings.
//
// Settings come from, in increasing priority: built-in defaults, an
// archflow.toml or archflow.yaml file, and ARCHFLOW_* environment
// variables. A .env file in the working directory is loaded into the
// environment first, without overriding variables that are already set.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/archflow/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ARCHFLOW_"

// SearchPaths are tried in order when no config file is named.
var SearchPaths = []string{"archflow.toml", "archflow.yaml", "archflow.yml"}

// Config holds every tunable setting.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `toml:"addr" yaml:"addr" validate:"required"`
	// Mode is the view mode entry points start in.
	Mode string `toml:"mode" yaml:"mode" validate:"oneof=simple detailed"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`

	SessionTTL      time.Duration `toml:"session_ttl" yaml:"session_ttl" validate:"gt=0"`
	SweepInterval   time.Duration `toml:"sweep_interval" yaml:"sweep_interval" validate:"gt=0"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout" validate:"gt=0"`

	// CacheDir overrides the per-user cache directory.
	CacheDir string `toml:"cache_dir" yaml:"cache_dir"`
	// NoCache disables artifact caching.
	NoCache bool `toml:"no_cache" yaml:"no_cache"`
	// RedisAddr selects the Redis cache backend when set.
	RedisAddr     string `toml:"redis_addr" yaml:"redis_addr" validate:"omitempty,hostname_port"`
	RedisPassword string `toml:"redis_password" yaml:"redis_password"`

	CORSOrigins []string `toml:"cors_origins" yaml:"cors_origins" validate:"dive,required"`

	// Source is the file the config was read from, if any.
	Source string `toml:"-" yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:            "127.0.0.1:8080",
		Mode:            "simple",
		LogLevel:        "info",
		SessionTTL:      30 * time.Minute,
		SweepInterval:   time.Minute,
		ShutdownTimeout: 10 * time.Second,
		CORSOrigins:     []string{"*"},
	}
}

// Load reads the configuration. An empty path searches [SearchPaths]; a
// missing file is only an error when path was given explicitly.
func Load(path string) (Config, error) {
	_ = godotenv.Load()
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	file, err := resolve(path)
	if err != nil {
		return cfg, err
	}
	if file != "" {
		if err := decodeFile(file, &cfg); err != nil {
			return cfg, err
		}
		cfg.Source = file
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// normalize lower-cases the enumerated settings.
func (c *Config) normalize() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate checks every field.
func (c Config) Validate() error {
	return errors.ValidateStruct(errors.ErrCodeInvalidConfig, c)
}

func resolve(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
		}
		return path, nil
	}
	for _, p := range SearchPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %s", path, undec[0])
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", ext)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, name)
		}
		*dst = d
		return nil
	}

	str("ADDR", &cfg.Addr)
	str("MODE", &cfg.Mode)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("CACHE_DIR", &cfg.CacheDir)
	str("REDIS_ADDR", &cfg.RedisAddr)
	str("REDIS_PASSWORD", &cfg.RedisPassword)

	for name, dst := range map[string]*time.Duration{
		"SESSION_TTL":      &cfg.SessionTTL,
		"SWEEP_INTERVAL":   &cfg.SweepInterval,
		"SHUTDOWN_TIMEOUT": &cfg.ShutdownTimeout,
	} {
		if err := dur(name, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup(EnvPrefix + "NO_CACHE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sNO_CACHE", EnvPrefix)
		}
		cfg.NoCache = b
	}
	if v, ok := lookup(EnvPrefix + "CORS_ORIGINS"); ok {
		cfg.CORSOrigins = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String summarises the effective settings for log output.
func (c Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "addr=%s mode=%s log_level=%s session_ttl=%s", c.Addr, c.Mode, c.LogLevel, c.SessionTTL)
	if c.RedisAddr != "" {
		fmt.Fprintf(&b, " redis=%s", c.RedisAddr)
	}
	if c.NoCache {
		b.WriteString(" no_cache=true")
	}
	return b.String()
}
