// Package views renders the pages behind the routes to a terminal.
package views

import (
	"context"
	"io"

	"grainmgr/cli/internal/auth"
	"grainmgr/cli/internal/backend"
	"grainmgr/cli/internal/router"
	"grainmgr/cli/internal/session"

	"github.com/pterm/pterm"
)

// Components returns the page for every route name of router.DefaultRoutes.
func Components(be backend.API, store *session.Store) map[string]router.Component {
	return map[string]router.Component{
		"login":     router.ComponentFunc(login),
		"register":  router.ComponentFunc(register),
		"home":      &Home{Store: store},
		"depots":    &Collection{API: be, Title: "Depots", Collection: backend.Depots},
		"granaries": &Collection{API: be, Title: "Granaries", Collection: backend.Granaries},
		"users":     &Collection{API: be, Title: "Users", Collection: backend.Users},
	}
}

var (
	titleStyle = pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)
	hintStyle  = pterm.NewStyle(pterm.FgGray)
)

func title(w io.Writer, s string) {
	pterm.Fprintln(w, titleStyle.Sprint(s))
	pterm.Fprintln(w)
}

func login(_ context.Context, w io.Writer) error {
	title(w, "Sign in")
	pterm.Fprintln(w, "You are not signed in.")
	pterm.Fprintln(w, hintStyle.Sprint("Run 'grainmgr login' to sign in, or 'grainmgr register' to create an account."))
	return nil
}

func register(_ context.Context, w io.Writer) error {
	title(w, "Create an account")
	pterm.Fprintln(w, hintStyle.Sprint("Run 'grainmgr register --username <name>' and then 'grainmgr login'."))
	return nil
}

// Home greets the signed in user.
type Home struct {
	Store *session.Store
}

func (h *Home) Render(_ context.Context, w io.Writer) error {
	title(w, "Grain Management System")
	if name := h.username(); name != "" {
		pterm.Fprintln(w, "Welcome, "+name+".")
	} else {
		pterm.Fprintln(w, "Welcome.")
	}
	pterm.Fprintln(w, hintStyle.Sprint("Pages: /depots, /granaries, /users"))
	return nil
}

// username prefers the cached profile; a restored session only has the token.
func (h *Home) username() string {
	if u, ok := h.Store.User(); ok && u.Username != "" {
		return u.Username
	}
	if c, err := auth.ParseClaims(h.Store.Token()); err == nil {
		return c.Subject
	}
	return ""
}
