// Copyright (c) 2025 The grainmgr Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/url"

	"grainmgr/cli/internal/transport"
)

// Sender is the transport contract the backend needs.
type Sender interface {
	Send(ctx context.Context, req *transport.Request) (transport.Payload, error)
}

// New creates a backend API implementation on top of the transport. baseURL is
// the API root the transport was configured with; the service root is derived
// from it.
func New(t Sender, baseURL string) API {
	return &HTTP{t: t, root: serviceRoot(baseURL)}
}

// serviceRoot strips the API prefix: http://host:8000/api -> http://host:8000/.
func serviceRoot(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/"
}
