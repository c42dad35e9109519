// Package router holds the route table, the navigation guard and the
// navigation state of the client.
//
// The guard only looks at the session's authenticated flag. Whether the token
// is still accepted by the backend is discovered by the transport when a request
// is made.
package router

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gorilla/mux"
)

// Well-known paths.
const (
	HomePath     = "/"
	LoginPath    = "/login"
	RegisterPath = "/register"
)

// Component renders the page behind a route.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// ComponentFunc adapts a function to Component.
type ComponentFunc func(ctx context.Context, w io.Writer) error

func (f ComponentFunc) Render(ctx context.Context, w io.Writer) error { return f(ctx, w) }

// Route is one entry of the route table. Only routes marked Public are
// reachable without a session.
type Route struct {
	Path      string
	Name      string
	Component Component
	Public    bool
}

// Table matches paths to routes.
type Table struct {
	mux    *mux.Router
	routes []Route
	byName map[string]Route
}

// NewTable builds a table from routes. Earlier routes win on overlapping patterns.
func NewTable(routes ...Route) *Table {
	t := &Table{mux: mux.NewRouter(), byName: make(map[string]Route, len(routes))}
	for _, r := range routes {
		t.routes = append(t.routes, r)
		t.byName[r.Name] = r
		t.mux.NewRoute().Path(r.Path).Name(r.Name)
	}
	return t
}

// Routes returns the entries in registration order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Lookup finds a route by name.
func (t *Table) Lookup(name string) (Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Match finds the route serving p.
func (t *Table) Match(p string) (Route, bool) {
	req, err := http.NewRequest(http.MethodGet, Clean(p), nil)
	if err != nil {
		return Route{}, false
	}
	var m mux.RouteMatch
	if !t.mux.Match(req, &m) || m.Route == nil {
		return Route{}, false
	}
	return t.Lookup(m.Route.GetName())
}

// Clean normalises a user supplied path: leading slash, no trailing slash,
// no query or fragment, dot segments resolved.
func Clean(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// DefaultRoutes is the application's route table. components maps route names
// to the pages rendering them; missing names get a nil Component.
func DefaultRoutes(components map[string]Component) []Route {
	return []Route{
		{Path: LoginPath, Name: "login", Component: components["login"], Public: true},
		{Path: RegisterPath, Name: "register", Component: components["register"], Public: true},
		{Path: HomePath, Name: "home", Component: components["home"]},
		{Path: "/depots", Name: "depots", Component: components["depots"]},
		{Path: "/granaries", Name: "granaries", Component: components["granaries"]},
		{Path: "/users", Name: "users", Component: components["users"]},
	}
}
