package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "grainmgr/cli/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Empty(t, c.Keyring.Backend)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	body := `{"base_url": "https://grain.example.com/api/", "timeout": "2s", "log_level": "info", "keyring": {"backend": "file"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o600))
	t.Setenv("GRAINMGR_LOG_LEVEL", "debug")
	t.Setenv("GRAINMGR_KEYRING_PASSWORD", "s3cret")

	c, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://grain.example.com/api", c.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 2*time.Second, c.Timeout)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "file", c.Keyring.Backend)
	assert.Equal(t, "s3cret", c.Keyring.Password)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: Config{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout}},
		{name: "relative url", cfg: Config{BaseURL: "/api", Timeout: DefaultTimeout}, wantErr: true},
		{name: "ftp scheme", cfg: Config{BaseURL: "ftp://host/api", Timeout: DefaultTimeout}, wantErr: true},
		{name: "zero timeout", cfg: Config{BaseURL: DefaultBaseURL}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.ConfigInvalid))
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	in := Config{BaseURL: "https://grain.example.com/api", Timeout: 3 * time.Second, LogLevel: "info", Keyring: KeyringConfig{Backend: "pass", Password: "never-written"}}
	require.NoError(t, Save(in))

	out, err := Load()
	require.NoError(t, err)
	assert.Equal(t, in.BaseURL, out.BaseURL)
	assert.Equal(t, in.Timeout, out.Timeout)
	assert.Equal(t, "pass", out.Keyring.Backend)
	assert.Empty(t, out.Keyring.Password)

	raw, err := os.ReadFile(filepath.Join(home, "grainmgr", "config.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "never-written")
}

func TestSetAndGet(t *testing.T) {
	c := Config{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout, LogLevel: "warn"}

	require.NoError(t, c.Set("base_url", "https://grain.example.com/api/"))
	assert.Equal(t, "https://grain.example.com/api", c.Get("base_url"))

	require.NoError(t, c.Set("timeout", "10s"))
	assert.Equal(t, "10s", c.Get("timeout"))

	err := c.Set("timeout", "soon")
	assert.True(t, apperrors.IsKind(err, apperrors.ConfigInvalid))

	err = c.Set("keyring.password", "x")
	assert.True(t, apperrors.IsKind(err, apperrors.ConfigInvalid), "secrets are not settable")

	for _, k := range Keys() {
		assert.NotPanics(t, func() { c.Get(k) })
	}
}

func TestUndecodableValuesAreConfigInvalid(t *testing.T) {
	t.Setenv("GRAINMGR_TIMEOUT", "5")
	_, err := LoadFrom(t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.ConfigInvalid))
}

func TestMalformedFileIsConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"base_url":`), 0o600))
	_, err := LoadFrom(dir)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.ConfigInvalid))
}
