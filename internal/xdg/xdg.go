// Package xdg resolves XDG Base Directory paths for grainmgr.
// The config directory holds non-secret settings; the state directory holds the
// encrypted file keyring when no OS credential store is available.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base.
const AppName = "grainmgr"

// ConfigDir returns the XDG config directory for grainmgr.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/grainmgr when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for grainmgr.
// It falls back to ~/.local/state/grainmgr when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return appDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func appDir(env, fallback string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, fallback)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
