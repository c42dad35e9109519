// Copyright (c) 2025 The grainmgr Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the calls the CLI makes to the Grain Management
// System API. Every call goes through the transport, so it carries the session
// token and takes part in session-expiry handling.
package backend

import "context"

// API defines backend operations the CLI depends on.
// Implementations may call the real REST API or provide fakes for tests.
type API interface {
	// Login exchanges credentials for a bearer token (OAuth2 password grant).
	Login(ctx context.Context, username, password string) (Token, error)
	// Register creates an account. It does not sign the new user in.
	Register(ctx context.Context, req RegisterRequest) (Account, error)
	// List returns one page of a collection behind a protected page.
	List(ctx context.Context, c Collection, page Page) ([]Record, error)
	// Version returns the service welcome message. It doubles as a connectivity probe.
	Version(ctx context.Context) (string, error)
}
