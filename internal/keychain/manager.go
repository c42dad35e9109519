// Copyright (c) 2025 The grainmgr Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain keeps the session token in the OS keychain/credential store.
// It exposes a single slot (key "token") and implements session.TokenStore.
//
// Supported stores are macOS Keychain, Windows Credential Manager, the Linux
// Secret Service / KWallet, pass, and an encrypted file under the XDG state
// directory when a keyring password is configured.
package keychain

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"grainmgr/cli/internal/xdg"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "grainmgr"

// KeyToken is the only item we store.
const KeyToken = "token"

// Options tune which keyring backend is opened.
type Options struct {
	// Backend forces one backend by name; empty selects the platform defaults.
	Backend string
	// FilePassword enables the encrypted file backend.
	FilePassword string
}

// Manager provides thread-safe access to the token slot.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// Open opens the OS keyring according to opts.
func Open(opts Options) (*Manager, error) {
	ring, err := openRing(opts)
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewWithRing wraps an already opened keyring, e.g. keyring.NewArrayKeyring in tests.
func NewWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

var backendNames = map[string]keyring.BackendType{
	"keychain":       keyring.KeychainBackend,
	"wincred":        keyring.WinCredBackend,
	"secret-service": keyring.SecretServiceBackend,
	"kwallet":        keyring.KWalletBackend,
	"pass":           keyring.PassBackend,
	"file":           keyring.FileBackend,
}

// allowedBackends returns the backends to try, in order.
func allowedBackends(goos string, opts Options) ([]keyring.BackendType, error) {
	if name := strings.ToLower(strings.TrimSpace(opts.Backend)); name != "" {
		b, ok := backendNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown keyring backend %q", opts.Backend)
		}
		if b == keyring.FileBackend && opts.FilePassword == "" {
			return nil, errors.New("file keyring requires GRAINMGR_KEYRING_PASSWORD")
		}
		return []keyring.BackendType{b}, nil
	}

	var out []keyring.BackendType
	switch goos {
	case "darwin":
		out = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		out = []keyring.BackendType{keyring.WinCredBackend}
	default:
		out = []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	}
	if opts.FilePassword != "" {
		out = append(out, keyring.FileBackend)
	}
	return out, nil
}

// openRing opens the OS keyring with the allowed backends.
func openRing(opts Options) (keyring.Keyring, error) {
	allowed, err := allowedBackends(runtime.GOOS, opts)
	if err != nil {
		return nil, err
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowed,
		PassPrefix:      ServiceName,
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}
	if opts.FilePassword != "" {
		dir, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		cfg.FileDir = filepath.Join(dir, "keyring")
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(opts.FilePassword)
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("secure storage unavailable: %w", err)
	}
	return ring, nil
}

// LoadToken retrieves the token. A missing item yields "" and no error.
func (m *Manager) LoadToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeyToken)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(it.Data), nil
}

// SaveToken stores the token, replacing any previous value.
func (m *Manager) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{
		Key:   KeyToken,
		Data:  []byte(token),
		Label: ServiceName + " session token",
	})
}

// ClearToken removes the token. Removing a missing item is not an error.
func (m *Manager) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Remove(KeyToken); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
