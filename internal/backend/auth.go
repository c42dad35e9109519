// Copyright (c) 2025 The grainmgr Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"errors"
	"strings"

	"grainmgr/cli/internal/transport"
)

// Token is the login answer.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Account is the created user as returned by the backend.
type Account struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	IsActive bool   `json:"is_active"`
}

// Login posts the form-encoded credentials to /auth/login.
func (h *HTTP) Login(ctx context.Context, username, password string) (Token, error) {
	payload, err := h.t.Send(ctx, transport.PostForm(loginPath, map[string]string{
		"username":   username,
		"password":   password,
		"grant_type": "password",
	}))
	if err != nil {
		return Token{}, err
	}

	// Be liberal in what we accept: decode into a map first
	var raw map[string]any
	if err := payload.Decode(&raw); err != nil {
		return Token{}, err
	}
	tok := Token{AccessToken: extractAccessToken(raw)}
	if tok.AccessToken == "" {
		return Token{}, errors.New("no access_token in response")
	}
	tok.TokenType, _ = raw["token_type"].(string)
	if tok.TokenType != "" && !strings.EqualFold(tok.TokenType, "bearer") {
		return Token{}, errors.New("unsupported token type " + tok.TokenType)
	}
	return tok, nil
}

// extractAccessToken tries the common field names for the token.
func extractAccessToken(result map[string]any) string {
	for _, k := range []string{"access_token", "accessToken", "token"} {
		if v, ok := result[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Register posts a new account.
func (h *HTTP) Register(ctx context.Context, req RegisterRequest) (Account, error) {
	payload, err := h.t.Send(ctx, transport.Post(registerPath, req))
	if err != nil {
		return Account{}, err
	}
	var acc Account
	if err := payload.Decode(&acc); err != nil {
		return Account{}, err
	}
	return acc, nil
}
