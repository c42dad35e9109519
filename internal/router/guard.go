package router

// Authenticator reports whether a session is active.
type Authenticator interface {
	IsAuthenticated() bool
}

// Outcome is the result of a guard check.
type Outcome int

const (
	// Allow lets the navigation proceed to the requested route.
	Allow Outcome = iota
	// Redirect sends the navigation to Decision.Target instead.
	Redirect
)

func (o Outcome) String() string {
	if o == Redirect {
		return "redirect"
	}
	return "allow"
}

// Decision is what the guard resolved for one navigation attempt.
type Decision struct {
	Outcome Outcome
	Target  string
}

func (d Decision) String() string {
	if d.Outcome == Redirect {
		return "redirect " + d.Target
	}
	return "allow"
}

// Guard decides every navigation before it happens.
type Guard struct {
	Session   Authenticator
	LoginPath string
	HomePath  string
}

// NewGuard returns a guard using the default login and home paths.
func NewGuard(s Authenticator) Guard {
	return Guard{Session: s, LoginPath: LoginPath, HomePath: HomePath}
}

// Check decides a navigation to target. Signed-in users are kept away from
// public pages (login, register) and sent home; everybody else needs a session
// for any non-public route.
func (g Guard) Check(target Route) Decision {
	authed := g.Session != nil && g.Session.IsAuthenticated()
	if target.Public {
		if authed {
			return Decision{Outcome: Redirect, Target: g.home()}
		}
		return Decision{Outcome: Allow}
	}
	if !authed {
		return Decision{Outcome: Redirect, Target: g.login()}
	}
	return Decision{Outcome: Allow}
}

func (g Guard) home() string {
	if g.HomePath == "" {
		return HomePath
	}
	return g.HomePath
}

func (g Guard) login() string {
	if g.LoginPath == "" {
		return LoginPath
	}
	return g.LoginPath
}
