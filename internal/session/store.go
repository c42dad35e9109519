// Copyright (c) 2025 The grainmgr Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session holds the authentication state shared by the transport and
// the navigation guard: the bearer token, the cached user profile, and the
// derived authenticated flag.
//
// The token is written through to durable storage on every change so that a
// session survives a restart. Storage failures never reach the caller; the
// session simply continues in memory and the failure is logged.
package session

import (
	"sync"

	apperrors "grainmgr/cli/internal/errors"

	"github.com/sirupsen/logrus"
)

// ErrInvalidToken is returned by SetToken for an empty token. Use Logout to end a session.
var ErrInvalidToken = apperrors.New(apperrors.InvalidToken, "token must not be empty")

// TokenStore is the durable one-slot storage for the session token.
// LoadToken returns "" and a nil error when nothing is stored.
type TokenStore interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	ClearToken() error
}

// UserProfile is the cached account of the logged in user. It is not persisted.
type UserProfile struct {
	Username string `json:"username"`
}

// Store is the session state. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	token  string
	user   *UserProfile
	tokens TokenStore
	log    logrus.FieldLogger
}

// New restores the session from tokens. A nil tokens keeps the session in memory only.
func New(tokens TokenStore, log logrus.FieldLogger) *Store {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	s := &Store{tokens: tokens, log: log.WithField("component", "session")}
	if tokens == nil {
		return s
	}
	t, err := tokens.LoadToken()
	if err != nil {
		s.log.WithError(err).Warn("cannot read persisted session, starting signed out")
		return s
	}
	s.token = t
	if t != "" {
		s.log.Debug("session restored from storage")
	}
	return s
}

// Token returns the current token, "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is held.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// User returns the cached profile, if one was set since the session began.
func (s *Store) User() (UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return UserProfile{}, false
	}
	return *s.user, true
}

// SetToken starts (or replaces) the session with t and persists it.
func (s *Store) SetToken(t string) error {
	if t == "" {
		return ErrInvalidToken
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = t
	if s.tokens != nil {
		if err := s.tokens.SaveToken(t); err != nil {
			s.log.WithError(err).Warn("cannot persist session token, keeping it in memory only")
		}
	}
	return nil
}

// SetUser replaces the cached profile.
func (s *Store) SetUser(u UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

// Logout clears the token, the profile and the persisted slot. The slot is
// cleared even when the memory holds nothing: it may carry a token this
// process never read.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	if s.tokens != nil {
		if err := s.tokens.ClearToken(); err != nil {
			s.log.WithError(err).Warn("cannot erase persisted session token")
		}
	}
}
