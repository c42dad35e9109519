// Copyright (c) 2025 The grainmgr Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth implements the sign-in, sign-up and sign-out flows of the CLI.
// It is the only writer of the session besides the transport's expiry handling.
package auth

import (
	"context"
	"strings"
	"time"

	"grainmgr/cli/internal/backend"
	"grainmgr/cli/internal/session"

	"github.com/sirupsen/logrus"
)

// Service centralizes authentication-related operations against the backend
// and the session store.
type Service struct {
	be    backend.API
	store *session.Store
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewService constructs an auth Service.
func NewService(be backend.API, store *session.Store, log logrus.FieldLogger) *Service {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Service{be: be, store: store, log: log.WithField("component", "auth"), now: time.Now}
}

// Login signs in and starts a session. The profile username is taken from the
// token's subject when the token carries one.
func (s *Service) Login(ctx context.Context, username, password string) (session.UserProfile, error) {
	username = strings.TrimSpace(username)
	tok, err := s.be.Login(ctx, username, password)
	if err != nil {
		return session.UserProfile{}, err
	}
	if err := s.store.SetToken(tok.AccessToken); err != nil {
		return session.UserProfile{}, err
	}

	profile := session.UserProfile{Username: username}
	if c, err := ParseClaims(tok.AccessToken); err == nil && c.Subject != "" {
		profile.Username = c.Subject
	} else if err != nil {
		s.log.WithError(err).Debug("token is not a readable JWT, keeping typed username")
	}
	s.store.SetUser(profile)
	s.log.WithField("user", profile.Username).Info("signed in")
	return profile, nil
}

// Register creates an account. The caller still has to log in.
func (s *Service) Register(ctx context.Context, req backend.RegisterRequest) (backend.Account, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	return s.be.Register(ctx, req)
}

// Logout ends the session locally. The backend keeps no server-side session.
func (s *Service) Logout() {
	s.store.Logout()
}

// Identity describes the signed in user for display.
type Identity struct {
	Username string
	// ExpiresAt is zero when the token carries no expiry.
	ExpiresAt time.Time
	// Expired is true when the token's own expiry has passed. The backend is
	// still the authority; this is only a hint.
	Expired bool
}

// WhoAmI reports the current identity without calling the backend.
func (s *Service) WhoAmI() (Identity, bool) {
	tok := s.store.Token()
	if tok == "" {
		return Identity{}, false
	}
	var id Identity
	if u, ok := s.store.User(); ok {
		id.Username = u.Username
	}
	if c, err := ParseClaims(tok); err == nil {
		if id.Username == "" {
			id.Username = c.Subject
		}
		id.ExpiresAt = c.ExpiresAt
		id.Expired = c.Expired(s.now())
	}
	return id, true
}
