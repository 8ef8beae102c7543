// Package config loads the calculator settings from YAML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when --config is not given.
const DefaultPath = "bigroot.yaml"

// Accepted names for the enumerated settings.
var (
	Formats       = []string{"plain", "list", "wrap", "json", "markdown"}
	ProgressModes = []string{"off", "text", "bar", "auto"}
	CacheDrivers  = []string{"none", "memory", "redis"}
	LogLevels     = []string{"off", "debug", "info", "warn", "error"}
)

// Config holds every setting of one invocation. It is loaded once and passed
// down explicitly; nothing reads it globally.
type Config struct {
	Base      int    `mapstructure:"base" json:"base"`
	Bits      uint64 `mapstructure:"bits" json:"bits"`
	Digits    uint64 `mapstructure:"digits" json:"digits"`
	ShiftBits uint   `mapstructure:"shift_bits" json:"shift_bits"`
	Format    string `mapstructure:"format" json:"format"`
	Progress  string `mapstructure:"progress" json:"progress"`
	Trim      bool   `mapstructure:"trim" json:"trim"`
	Golden    bool   `mapstructure:"golden" json:"golden"`

	Log    LogConfig    `mapstructure:"log" json:"log"`
	Cache  CacheConfig  `mapstructure:"cache" json:"cache"`
	Server ServerConfig `mapstructure:"server" json:"server"`
}

// LogConfig controls diagnostics on stderr.
type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
}

// CacheConfig selects and configures the result store.
type CacheConfig struct {
	Driver   string        `mapstructure:"driver" json:"driver"`
	Addr     string        `mapstructure:"addr" json:"addr"`
	Password string        `mapstructure:"password" json:"password"`
	DB       int           `mapstructure:"db" json:"db"`
	TTL      time.Duration `mapstructure:"ttl" json:"ttl"`
	Prefix   string        `mapstructure:"prefix" json:"prefix"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Port int `mapstructure:"port" json:"port"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Base:      domain.DefaultBase,
		ShiftBits: domain.DefaultShiftBits,
		Format:    "plain",
		Progress:  "off",
		Trim:      true,
		Log:       LogConfig{Level: "off"},
		Cache:     CacheConfig{Driver: "none", Addr: "localhost:6379"},
		Server:    ServerConfig{Port: 8080},
	}
}

// Load reads path over the defaults. A missing file is only an error when
// explicit is true; otherwise the defaults are returned as they are.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode merges a generic map (from YAML, JSON or flags) into cfg.
// Scalars are weakly typed, so "16" works for a number and "90s" for a duration.
// Unknown keys are rejected.
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if err := domain.ValidateBase(c.Base); err != nil {
		return err
	}
	if err := domain.ValidateShiftBits(c.ShiftBits); err != nil {
		return err
	}
	for _, check := range []struct {
		field, value string
		allowed      []string
	}{
		{"format", c.Format, Formats},
		{"progress", c.Progress, ProgressModes},
		{"cache.driver", c.Cache.Driver, CacheDrivers},
		{"log.level", c.Log.Level, LogLevels},
	} {
		if !slices.Contains(check.allowed, check.value) {
			return fmt.Errorf("%s %q not one of %v: %w", check.field, check.value, check.allowed, domain.ErrInvalidArgument)
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range: %w", c.Server.Port, domain.ErrInvalidArgument)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl %s is negative: %w", c.Cache.TTL, domain.ErrInvalidArgument)
	}
	return nil
}

// FractionalBits resolves the requested precision: explicit bits win, then
// digits in the configured base, then domain.DefaultDigits.
func (c Config) FractionalBits() uint64 {
	return domain.ResolveBits(c.Bits, c.Digits, c.Base)
}
