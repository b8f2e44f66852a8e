package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/jmoreira/produtos-cli/pkg/api"
	"github.com/jmoreira/produtos-cli/pkg/config"
	"github.com/jmoreira/produtos-cli/pkg/dashboard"
	"github.com/jmoreira/produtos-cli/pkg/logger"
	"github.com/jmoreira/produtos-cli/pkg/produto"
	"github.com/jmoreira/produtos-cli/pkg/session"
	"github.com/jmoreira/produtos-cli/pkg/token"
)

// appEnv carries the wired dependencies: config → logger → token store →
// session → API client → dashboard.
type appEnv struct {
	cfg     *config.Config
	store   token.Store
	session *session.Manager
	client  *api.Client
	board   *dashboard.Dashboard
}

func newApp(cfg *config.Config) *cli.App {
	env := &appEnv{cfg: cfg}

	return &cli.App{
		Name:  "produtos",
		Usage: "command-line client for the product management API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-address",
				Aliases: []string{"a"},
				Usage:   "base URL of the product API",
				Value:   cfg.APIAddress,
			},
			&cli.StringFlag{
				Name:  "credentials-file",
				Usage: "where the session token is kept",
				Value: cfg.CredentialsFile,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "request timeout",
				Value: cfg.RequestTimeout,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "log level (debug, info, warn, error)",
				Value:   cfg.LogLevel,
			},
		},
		Before: env.setup,
		Commands: []*cli.Command{
			loginCommand(env),
			registerCommand(env),
			logoutCommand(env),
			whoamiCommand(env),
			listCommand(env),
			searchCommand(env),
			getCommand(env),
			createCommand(env),
			updateCommand(env),
			deleteCommand(env),
		},
	}
}

func (a *appEnv) setup(c *cli.Context) error {
	a.cfg.APIAddress = c.String("api-address")
	a.cfg.CredentialsFile = c.String("credentials-file")
	a.cfg.RequestTimeout = c.Duration("timeout")
	a.cfg.LogLevel = c.String("log-level")

	logger.Run(a.cfg.LogLevel)

	path := a.cfg.CredentialsFile
	if path == `` {
		var err error
		path, err = token.DefaultPath()
		if err != nil {
			return err
		}
	}
	a.store = token.NewFileStore(path)
	a.session = session.NewManager(a.store, session.NewEvaluator(a.store))
	a.client = api.New(a.cfg.APIAddress, a.store, api.WithTimeout(a.cfg.RequestTimeout))
	a.board = dashboard.New(a.client)
	return nil
}

// requireSession is the protected-route check: the session settles out of
// Initializing first, and anonymous users are sent to login.
func (a *appEnv) requireSession(c *cli.Context) error {
	if err := a.session.Init(c.Context); err != nil {
		return err
	}
	ok, err := a.session.IsLoggedIn(c.Context)
	if err != nil {
		return err
	}
	if !ok {
		return cli.Exit("not logged in: run `produtos login` first", 1)
	}
	return nil
}

// friendly rewrites the API error taxonomy into the messages the user
// sees. Navigation on session expiry lives here, not in the data layer.
func friendly(err error) error {
	if err == nil {
		return nil
	}

	var (
		fieldErrs     produto.FieldErrors
		validationErr *api.ValidationError
		serverErr     *api.ServerError
		transportErr  *api.TransportError
	)
	switch {
	case errors.Is(err, api.ErrSessionExpired):
		return cli.Exit("session expired: run `produtos login` to sign in again", 1)
	case errors.Is(err, api.ErrNotFound):
		return cli.Exit("product not found", 1)
	case errors.As(err, &fieldErrs):
		return cli.Exit(formatFieldErrors(fieldErrs), 1)
	case errors.As(err, &validationErr):
		if len(validationErr.Fields) == 0 {
			return cli.Exit("invalid data, check the fields and try again", 1)
		}
		fields := make(map[string]string, len(validationErr.Fields))
		for f, msgs := range validationErr.Fields {
			if len(msgs) > 0 {
				fields[f] = msgs[0]
			}
		}
		return cli.Exit(formatFieldErrors(fields), 1)
	case errors.As(err, &serverErr):
		return cli.Exit("the server failed to answer, try again later", 1)
	case errors.As(err, &transportErr):
		return cli.Exit("could not reach the server, check your connection", 1)
	}
	return err
}

func formatFieldErrors(fields map[string]string) string {
	out := "invalid data:"
	for _, f := range []string{"nome", "descricao", "preco", "categoria", "email", "password", "confirmpassword"} {
		if msg, ok := fields[f]; ok {
			out += fmt.Sprintf("\n  %s: %s", f, msg)
		}
	}
	for f, msg := range fields {
		switch f {
		case "nome", "descricao", "preco", "categoria", "email", "password", "confirmpassword":
		default:
			out += fmt.Sprintf("\n  %s: %s", f, msg)
		}
	}
	return out
}
