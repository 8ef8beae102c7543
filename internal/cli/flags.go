package cli

import (
	"strings"

	"github.com/aretw0/bigroot/internal/config"
	"github.com/spf13/pflag"
)

// flagKeys maps value flags to the config keys they override.
var flagKeys = map[string]string{
	"base":          "base",
	"bits":          "bits",
	"digits":        "digits",
	"shift-bits":    "shift_bits",
	"format":        "format",
	"progress-mode": "progress",
	"golden":        "golden",
	"log-level":     "log.level",
	"cache":         "cache.driver",
	"redis-addr":    "cache.addr",
	"cache-ttl":     "cache.ttl",
	"port":          "server.port",
}

// shortcuts are boolean flags that stand for a fixed config value.
var shortcuts = map[string]struct {
	key   string
	value any
}{
	"list":       {"format", "list"},
	"wrap":       {"format", "wrap"},
	"progress":   {"progress", "text"},
	"keep-zeros": {"trim", false},
}

// LoadConfig reads the config file named by --config (or config.DefaultPath)
// and applies every flag the user set on top of it. Flags win.
func LoadConfig(flags *pflag.FlagSet) (config.Config, error) {
	path := config.DefaultPath
	explicit := false
	if f := flags.Lookup("config"); f != nil && f.Changed {
		path, explicit = f.Value.String(), true
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return cfg, err
	}

	raw := map[string]any{}
	flags.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			setPath(raw, key, f.Value.String())
			return
		}
		if s, ok := shortcuts[f.Name]; ok && f.Value.String() == "true" {
			setPath(raw, s.key, s.value)
		}
	})
	if len(raw) == 0 {
		return cfg, nil
	}

	if err := config.Decode(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// setPath stores value under a dotted key, creating nested maps.
func setPath(raw map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	m := raw
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}
