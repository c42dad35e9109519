package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"grainmgr/cli/internal/auth"
	"grainmgr/cli/internal/backend"
	"grainmgr/cli/internal/config"
	apperrors "grainmgr/cli/internal/errors"
	"grainmgr/cli/internal/httperrors"
	"grainmgr/cli/internal/keychain"
	"grainmgr/cli/internal/logging"
	"grainmgr/cli/internal/notify"
	"grainmgr/cli/internal/router"
	"grainmgr/cli/internal/session"
	"grainmgr/cli/internal/terminal"
	"grainmgr/cli/internal/transport"
	"grainmgr/cli/internal/views"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// openTokenStore opens the durable token slot. Tests swap in an in-memory keyring.
var openTokenStore = func(cfg config.Config) (session.TokenStore, error) {
	return keychain.Open(keychain.Options{Backend: cfg.Keyring.Backend, FilePassword: cfg.Keyring.Password})
}

// app is the per-invocation wiring.
type app struct {
	cfg      config.Config
	log      *logrus.Logger
	notifier notify.Notifier
	store    *session.Store
	client   *transport.Client
	api      backend.API
	auth     *auth.Service
	router   *router.Router

	out    io.Writer
	errOut io.Writer
}

func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configDir != "" {
		cfg, err = config.LoadFrom(configDir)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		httperrors.Present(cmd.ErrOrStderr(), err, "loading configuration", "")
		return nil, errReported
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logging.New(cmd.ErrOrStderr(), level)

	var store *session.Store
	if tokens, err := openTokenStore(cfg); err != nil {
		log.WithError(err).Warn("keychain unavailable, the session will not outlive this command")
		store = session.New(nil, log)
	} else {
		store = session.New(tokens, log)
	}

	n := notify.NewTerminal(cmd.ErrOrStderr())
	client := transport.New(transport.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		UserAgent: "grainmgr/" + Version,
		LoginPath: router.LoginPath,
	}, transport.Deps{Session: store, Notifier: n, Log: log})
	api := backend.New(client, cfg.BaseURL)

	table := router.NewTable(router.DefaultRoutes(views.Components(api, store))...)
	r := router.New(table, router.NewGuard(store), log)
	client.SetNavigator(r)

	return &app{
		cfg:      cfg,
		log:      log,
		notifier: n,
		store:    store,
		client:   client,
		api:      api,
		auth:     auth.NewService(api, store, log),
		router:   r,
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
	}, nil
}

// open navigates to p and renders the page the guard settled on.
func (a *app) open(ctx context.Context, p string) error {
	res, err := a.router.Navigate(p)
	if err != nil {
		return a.fail(err, "opening "+router.Clean(p))
	}
	if res.Redirected() {
		a.notifier.Info(fmt.Sprintf("%s is not available, showing %s", res.Requested, res.Route.Path))
	}
	return a.render(ctx, res.Route)
}

func (a *app) render(ctx context.Context, route router.Route) error {
	if route.Component == nil {
		return nil
	}
	err := route.Component.Render(ctx, a.out)
	if err == nil {
		return nil
	}
	if apperrors.IsKind(err, apperrors.AuthorizationExpired) {
		// The transport already moved the router; show where it ended.
		if cur, ok := a.router.Table().Match(a.router.Current()); ok && cur.Component != nil {
			_ = cur.Component.Render(ctx, a.out)
		}
	}
	return a.fail(err, "loading "+route.Name)
}

// fail explains err to the user and returns errReported.
func (a *app) fail(err error, context string) error {
	httperrors.Present(a.errOut, err, context, httperrors.HostOf(a.cfg.BaseURL))
	return errReported
}

// spin shows a spinner on stderr while work runs, only on a terminal.
func (a *app) spin(text string) func() {
	if f, ok := a.errOut.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return terminal.StartSpinner(f, text, 120*time.Millisecond)
	}
	return func() {}
}
