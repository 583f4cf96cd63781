// Package ui runs the terminal user interface.
package ui

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/mindease/pkg/app"
	teaui "tableflip.dev/mindease/pkg/tui/app"
)

// Identity remembers the logged in user between runs.
type Identity interface {
	SaveUsername(username string) error
	ClearUsername() error
}

// UI launches the Bubble Tea program against Backend. Username prefills
// the login form; logins and logouts are written back through Identity.
type UI struct {
	Backend  app.Backend
	Identity Identity
	Username string
	Logger   *zap.Logger
}

func (u *UI) Do(ctx context.Context) error {
	if u.Backend == nil {
		return errors.New("ui requires a backend")
	}
	log := u.Logger
	if log == nil {
		log = zap.NewNop()
	}

	opts := teaui.Options{
		Backend:  u.Backend,
		Logger:   log,
		Username: u.Username,
	}
	if u.Identity != nil {
		opts.OnLogin = func(username string) {
			if err := u.Identity.SaveUsername(username); err != nil {
				log.Warn("remembering user failed", zap.Error(err))
			}
		}
		opts.OnLogout = func() {
			if err := u.Identity.ClearUsername(); err != nil {
				log.Warn("forgetting user failed", zap.Error(err))
			}
		}
	}

	log.Info("starting ui")
	defer log.Info("ui stopped")
	return teaui.Run(ctx, opts)
}
