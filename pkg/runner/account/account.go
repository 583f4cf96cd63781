// Package account implements the session commands: backend status, login,
// registration, logout and password changes.
package account

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/mindease/pkg/api"
	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/printers"
)

// Identity remembers the logged in user between commands.
type Identity interface {
	SaveUsername(username string) error
	ClearUsername() error
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

// Status reports whether the backend and its database are reachable.
type Status struct {
	Backend app.Backend
	Out     io.Writer
	JSON    bool
}

func (s *Status) Do(ctx context.Context) error {
	h, err := s.Backend.Health(ctx)
	if err != nil {
		return fmt.Errorf("backend status: %s", api.Describe(err))
	}
	if s.JSON {
		return printers.JSON(s.Out, h)
	}

	out := output(s.Out)
	state := color.New(color.FgGreen, color.Bold)
	if h.Status != "success" {
		state = color.New(color.FgRed, color.Bold)
	}
	_, _ = fmt.Fprint(out, "Backend: ")
	_, _ = state.Fprintln(out, h.Status)
	_, _ = fmt.Fprintf(out, "Database: %s\n", h.DatabaseStatus)
	if h.Message != "" {
		_, _ = color.New(color.Faint).Fprintln(out, h.Message)
	}
	return nil
}

// Login authenticates, or registers when Register is set. A successful
// login is remembered through Identity.
type Login struct {
	Backend  app.Backend
	Identity Identity
	Username string
	Password string
	Register bool
	Out      io.Writer
	JSON     bool
}

func (l *Login) Do(ctx context.Context) error {
	creds := api.Credentials{Username: strings.TrimSpace(l.Username), Password: l.Password}
	if err := app.ValidateCredentials(creds); err != nil {
		return err
	}

	if l.Register {
		msg, err := l.Backend.Register(ctx, creds)
		if err != nil {
			return fmt.Errorf("registration failed: %s", api.Describe(err))
		}
		return l.report(map[string]string{"message": msg, "username": creds.Username}, msg)
	}

	res, err := l.Backend.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login failed: %s", api.Describe(err))
	}
	if l.Identity != nil {
		if err := l.Identity.SaveUsername(res.Username); err != nil {
			return err
		}
	}
	return l.report(map[string]string{"message": res.Message, "username": res.Username},
		fmt.Sprintf("%s Logged in as %s.", res.Message, res.Username))
}

func (l *Login) report(v any, text string) error {
	if l.JSON {
		return printers.JSON(l.Out, v)
	}
	_, err := fmt.Fprintln(output(l.Out), text)
	return err
}

// Logout forgets the remembered user.
type Logout struct {
	Identity Identity
	Out      io.Writer
}

func (l *Logout) Do(_ context.Context) error {
	if l.Identity != nil {
		if err := l.Identity.ClearUsername(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(output(l.Out), "You have been successfully logged out.")
	return err
}

// Passwd changes the user's password after checking the confirmation.
type Passwd struct {
	Backend     app.Backend
	Username    string
	OldPassword string
	NewPassword string
	Confirm     string
	Out         io.Writer
	JSON        bool
}

func (p *Passwd) Do(ctx context.Context) error {
	if err := app.ValidatePasswordChange(p.OldPassword, p.NewPassword, p.Confirm); err != nil {
		return err
	}
	msg, err := p.Backend.ChangePassword(ctx, p.Username, p.OldPassword, p.NewPassword)
	if err != nil {
		return fmt.Errorf("password change failed: %s", api.Describe(err))
	}
	if p.JSON {
		return printers.JSON(p.Out, map[string]string{"message": msg})
	}
	_, err = fmt.Fprintln(output(p.Out), msg)
	return err
}
