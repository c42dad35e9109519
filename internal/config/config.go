// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept in the file; the session token goes to the
// OS keychain. Every key can be overridden from the environment with the
// GRAINMGR_ prefix (GRAINMGR_BASE_URL, GRAINMGR_TIMEOUT, ...).
package config

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "grainmgr/cli/internal/errors"
	"grainmgr/cli/internal/xdg"

	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is where a locally started backend serves its API.
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 5 * time.Second

	envPrefix = "GRAINMGR"
	fileName  = "config"
	fileType  = "json"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	BaseURL  string        `mapstructure:"base_url" json:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`
	LogLevel string        `mapstructure:"log_level" json:"log_level"`
	Keyring  KeyringConfig `mapstructure:"keyring" json:"keyring"`
}

// KeyringConfig selects the credential store backend.
type KeyringConfig struct {
	// Backend forces a single keyring backend ("keychain", "wincred",
	// "secret-service", "kwallet", "pass", "file"). Empty means platform default.
	Backend string `mapstructure:"backend" json:"backend"`
	// Password unlocks the encrypted file backend. Env only; never saved.
	Password string `mapstructure:"password" json:"-"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log_level", "warn")
	v.SetDefault("keyring.backend", "")
	v.SetDefault("keyring.password", "")
	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration; missing file returns defaults plus env overrides.
func Load() (Config, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads config.json from dir.
func LoadFrom(dir string) (Config, error) {
	var c Config
	v := newViper()
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, apperrors.Wrap(apperrors.ConfigInvalid, "cannot parse config.json", err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, apperrors.Wrap(apperrors.ConfigInvalid, "invalid setting (timeout takes a unit, e.g. 5s)", err)
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	return c, c.Validate()
}

// Validate rejects values the transport cannot work with.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return apperrors.New(apperrors.ConfigInvalid, "base_url must be an absolute http(s) URL, got "+strconv.Quote(c.BaseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperrors.New(apperrors.ConfigInvalid, "base_url scheme must be http or https")
	}
	if c.Timeout <= 0 {
		return apperrors.New(apperrors.ConfigInvalid, "timeout must be positive")
	}
	return nil
}

// Save writes the non-secret settings with 0600 permissions.
func Save(c Config) error {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return err
	}
	return SaveTo(dir, c)
}

// SaveTo writes config.json into dir.
func SaveTo(dir string, c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	p := filepath.Join(dir, fileName+"."+fileType)
	v := viper.New()
	v.Set("base_url", c.BaseURL)
	v.Set("timeout", c.Timeout.String())
	v.Set("log_level", c.LogLevel)
	v.Set("keyring.backend", c.Keyring.Backend)
	if err := v.WriteConfigAs(p); err != nil {
		return err
	}
	return os.Chmod(p, 0o600)
}

// Set changes one non-secret key by its config name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "base_url":
		c.BaseURL = strings.TrimRight(strings.TrimSpace(value), "/")
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return apperrors.Wrap(apperrors.ConfigInvalid, "timeout must be a duration like 5s", err)
		}
		c.Timeout = d
	case "log_level":
		c.LogLevel = value
	case "keyring.backend":
		c.Keyring.Backend = value
	default:
		return apperrors.New(apperrors.ConfigInvalid, "unknown key "+strconv.Quote(key))
	}
	return c.Validate()
}

// Keys lists the settable keys in display order.
func Keys() []string {
	return []string{"base_url", "timeout", "log_level", "keyring.backend"}
}

// Get returns the display value of key.
func (c Config) Get(key string) string {
	switch key {
	case "base_url":
		return c.BaseURL
	case "timeout":
		return c.Timeout.String()
	case "log_level":
		return c.LogLevel
	case "keyring.backend":
		return c.Keyring.Backend
	}
	return ""
}
