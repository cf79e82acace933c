// Package config defines the user-editable build configuration.
//
// The configuration is persisted as a single record under the
// "save_config" key of the settings store and is read whole before every
// build. Every field is a string, bool or duration; a missing record yields
// the defaults from Default.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	e "bundlekit/pkg/errors"
)

// StoreKey is the settings-store key the configuration lives under.
const StoreKey = "save_config"

// SigningMode selects between bundletool's debug keystore and an explicit
// release keystore.
type SigningMode string

const (
	SigningDebug   SigningMode = "debug"
	SigningRelease SigningMode = "release"
)

const (
	defaultTimeout       = 30 * time.Minute
	defaultVerifyTimeout = 15 * time.Second
)

// Config holds every field the user can set.
type Config struct {
	BundletoolPath   string      `yaml:"bundletool_path"`
	BundlePath       string      `yaml:"bundle_path"`
	Aapt2Path        string      `yaml:"aapt2_path"`
	Overwrite        bool        `yaml:"overwrite"`
	Universal        bool        `yaml:"universal"`
	SigningMode      SigningMode `yaml:"signing_mode"`
	KeystorePath     string      `yaml:"keystore_path"`
	KeystorePassword string      `yaml:"keystore_password"`
	KeyAlias         string      `yaml:"key_alias"`
	KeyPassword      string      `yaml:"key_password"`
	AutoUnzip        bool        `yaml:"auto_unzip"`
	AdbPath          string      `yaml:"adb_path"`
	Timeout          Duration    `yaml:"timeout"`
	VerifyTimeout    Duration    `yaml:"verify_timeout"`
}

// Default returns the configuration used when nothing has been saved yet.
func Default() Config {
	return Config{
		SigningMode:   SigningDebug,
		AutoUnzip:     true,
		Timeout:       Duration{defaultTimeout},
		VerifyTimeout: Duration{defaultVerifyTimeout},
	}
}

// Store is the key-value collaborator the configuration is persisted in.
type Store interface {
	Get(key string, into any) (bool, error)
	Put(key string, value any) error
}

// Load reads the configuration from s. A missing record returns Default
// and a nil error.
func Load(s Store) (Config, error) {
	cfg := Default()
	if _, err := s.Get(StoreKey, &cfg); err != nil {
		return Default(), err
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration to s.
func Save(s Store, cfg Config) error {
	return s.Put(StoreKey, cfg)
}

// normalize repairs values an older or hand-edited record may carry.
func (c *Config) normalize() {
	if c.SigningMode != SigningRelease {
		c.SigningMode = SigningDebug
	}
}

// IsRelease reports whether release signing is selected.
func (c Config) IsRelease() bool { return c.SigningMode == SigningRelease }

// Secrets returns the non-empty password values for log masking.
func (c Config) Secrets() []string {
	var out []string
	for _, s := range []string{c.KeystorePassword, c.KeyPassword} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Redacted returns a copy with passwords masked.
func (c Config) Redacted() Config {
	if c.KeystorePassword != "" {
		c.KeystorePassword = "****"
	}
	if c.KeyPassword != "" {
		c.KeyPassword = "****"
	}
	return c
}

// fieldSetters maps yaml keys to setters used by Set.
var fieldSetters = map[string]func(c *Config, v string) error{
	"bundletool_path":   func(c *Config, v string) error { c.BundletoolPath = v; return nil },
	"bundle_path":       func(c *Config, v string) error { c.BundlePath = v; return nil },
	"aapt2_path":        func(c *Config, v string) error { c.Aapt2Path = v; return nil },
	"keystore_path":     func(c *Config, v string) error { c.KeystorePath = v; return nil },
	"keystore_password": func(c *Config, v string) error { c.KeystorePassword = v; return nil },
	"key_alias":         func(c *Config, v string) error { c.KeyAlias = v; return nil },
	"key_password":      func(c *Config, v string) error { c.KeyPassword = v; return nil },
	"adb_path":          func(c *Config, v string) error { c.AdbPath = v; return nil },
	"overwrite":         boolSetter(func(c *Config, b bool) { c.Overwrite = b }),
	"universal":         boolSetter(func(c *Config, b bool) { c.Universal = b }),
	"auto_unzip":        boolSetter(func(c *Config, b bool) { c.AutoUnzip = b }),
	"signing_mode": func(c *Config, v string) error {
		switch SigningMode(strings.ToLower(v)) {
		case SigningDebug:
			c.SigningMode = SigningDebug
		case SigningRelease:
			c.SigningMode = SigningRelease
		default:
			return fmt.Errorf("signing_mode must be debug or release, got %q", v)
		}
		return nil
	},
	"timeout":        durationSetter(func(c *Config, d time.Duration) { c.Timeout = Duration{d} }),
	"verify_timeout": durationSetter(func(c *Config, d time.Duration) { c.VerifyTimeout = Duration{d} }),
}

func boolSetter(set func(*Config, bool)) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		set(c, b)
		return nil
	}
}

func durationSetter(set func(*Config, time.Duration)) func(*Config, string) error {
	return func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return fmt.Errorf("expected a duration like 30m or 0 to disable, got %q", v)
		}
		set(c, d)
		return nil
	}
}

// Set assigns a field by its yaml key.
func (c *Config) Set(key, value string) error {
	set, ok := fieldSetters[key]
	if !ok {
		return e.New(e.ErrInvalidConfig, fmt.Sprintf("Unknown setting %q", key)).
			WithSuggestion("Known settings: " + strings.Join(Keys(), ", "))
	}
	if err := set(c, value); err != nil {
		return e.Wrap(err, e.ErrInvalidConfig, fmt.Sprintf("Invalid value for %s", key))
	}
	return nil
}

// Keys lists the settable yaml keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fieldSetters))
	for k := range fieldSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
