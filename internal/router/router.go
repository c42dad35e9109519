package router

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound is returned when an allowed navigation matches no route.
	ErrNotFound = errors.New("route not found")
	// ErrRedirectLoop is returned when guard redirects do not settle.
	ErrRedirectLoop = errors.New("too many redirects")
)

// maxRedirects bounds a redirect chain. The default table settles after one.
const maxRedirects = 8

// Resolution is a finished navigation.
type Resolution struct {
	// Requested is the cleaned path the caller asked for.
	Requested string
	// Route is where the navigation ended.
	Route Route
	// Redirects lists the guard decisions that moved the navigation, in order.
	Redirects []Decision
}

// Redirected reports whether the guard moved the navigation.
func (r Resolution) Redirected() bool { return len(r.Redirects) > 0 }

// Router applies the guard to every navigation and tracks the current location.
// It is safe for concurrent use.
type Router struct {
	table *Table
	guard Guard
	log   logrus.FieldLogger

	mu      sync.Mutex
	history []string
}

// New returns a router with no current location.
func New(table *Table, guard Guard, log logrus.FieldLogger) *Router {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Router{table: table, guard: guard, log: log.WithField("component", "router")}
}

// Table returns the route table.
func (r *Router) Table() *Table { return r.table }

// Guard returns the navigation guard.
func (r *Router) Guard() Guard { return r.guard }

// Navigate resolves p through the guard and moves the current location there.
// Every navigation ends allowed, redirected home, or redirected to login; a
// redirect target is checked again before it is entered.
func (r *Router) Navigate(p string) (Resolution, error) {
	res, err := r.resolve(p)
	if err != nil {
		return res, err
	}
	r.mu.Lock()
	r.enter(res.Route.Path)
	r.mu.Unlock()
	return res, nil
}

// enter appends p to the history unless it is already current. r.mu must be held.
func (r *Router) enter(p string) {
	if n := len(r.history); n == 0 || r.history[n-1] != p {
		r.history = append(r.history, p)
	}
}

// Push navigates to p, discarding the resolution.
func (r *Router) Push(p string) error {
	_, err := r.Navigate(p)
	return err
}

// Resolve runs the guard for p without moving the current location.
func (r *Router) Resolve(p string) (Resolution, error) {
	return r.resolve(p)
}

func (r *Router) resolve(p string) (Resolution, error) {
	target := Clean(p)
	res := Resolution{Requested: target}
	for {
		route, known := r.table.Match(target)
		if !known {
			// Unknown paths carry no public flag, so they need a session like any other page.
			route = Route{Path: target}
		}
		d := r.guard.Check(route)
		log := r.log.WithFields(logrus.Fields{"path": target, "decision": d.String()})
		if d.Outcome == Allow {
			if !known {
				log.Debug("navigation allowed to unknown path")
				return res, fmt.Errorf("%w: %s", ErrNotFound, target)
			}
			log.Debug("navigation allowed")
			res.Route = route
			return res, nil
		}
		log.Debug("navigation redirected")
		res.Redirects = append(res.Redirects, d)
		if len(res.Redirects) > maxRedirects {
			return res, fmt.Errorf("%w: %s", ErrRedirectLoop, res.Requested)
		}
		target = Clean(d.Target)
	}
}

// Current returns the current location, "" before the first navigation.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return ""
	}
	return r.history[len(r.history)-1]
}

// History returns the visited locations, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

// Back leaves the current location for the previous one. The previous location
// is guarded again, so going back to a protected page after logout ends on login.
func (r *Router) Back() (Resolution, error) {
	r.mu.Lock()
	if len(r.history) < 2 {
		cur := ""
		if len(r.history) == 1 {
			cur = r.history[0]
		}
		r.mu.Unlock()
		if cur == "" {
			return Resolution{}, nil
		}
		return r.Resolve(cur)
	}
	prev := r.history[len(r.history)-2]
	r.mu.Unlock()

	// History only changes once the previous location resolved.
	res, err := r.resolve(prev)
	if err != nil {
		return res, err
	}
	r.mu.Lock()
	if n := len(r.history); n >= 2 {
		r.history = r.history[:n-2]
	}
	r.enter(res.Route.Path)
	r.mu.Unlock()
	return res, nil
}
