package app

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mindease/pkg/api"
)

// AuthMode selects which request the session gate sends.
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeRegister
)

func (m AuthMode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// Gate is the login/registration form.
type Gate struct {
	ctx     context.Context
	backend Backend

	Mode     AuthMode
	Username string
	Password string

	// Message is the inline feedback line; MessageIsError selects its styling.
	Message        string
	MessageIsError bool

	busy bool
}

// NewGate returns a gate in login mode.
func NewGate(ctx context.Context, backend Backend) *Gate {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Gate{ctx: ctx, backend: backend}
}

// Busy reports whether a request is in flight. Inputs and submit are
// disabled while busy.
func (g *Gate) Busy() bool { return g.busy }

// ToggleMode switches between login and register and clears the form.
func (g *Gate) ToggleMode() {
	if g.busy {
		return
	}
	if g.Mode == ModeLogin {
		g.Mode = ModeRegister
	} else {
		g.Mode = ModeLogin
	}
	g.Message = ""
	g.MessageIsError = false
	g.Username = ""
	g.Password = ""
}

// Reset returns the gate to an empty login form.
func (g *Gate) Reset() {
	g.Mode = ModeLogin
	g.Username = ""
	g.Password = ""
	g.Message = ""
	g.MessageIsError = false
	g.busy = false
}

// Submit sends the credentials for the current mode. It returns nil while a
// request is already in flight or when a field is empty.
func (g *Gate) Submit() tea.Cmd {
	if g.busy {
		return nil
	}
	creds := api.Credentials{Username: strings.TrimSpace(g.Username), Password: g.Password}
	if err := ValidateCredentials(creds); err != nil {
		g.Message = "Error: " + err.Error()
		g.MessageIsError = true
		return nil
	}

	g.Message = ""
	g.MessageIsError = false
	g.busy = true

	ctx, backend, mode := g.ctx, g.backend, g.Mode
	return func() tea.Msg {
		if mode == ModeRegister {
			msg, err := backend.Register(ctx, creds)
			return AuthResultMsg{Mode: mode, Message: msg, Err: err}
		}
		res, err := backend.Login(ctx, creds)
		return AuthResultMsg{Mode: mode, Username: res.Username, Message: res.Message, Err: err}
	}
}

// Apply folds an auth result into the form. It returns the new session
// identity when a login succeeded.
func (g *Gate) Apply(msg AuthResultMsg) (identity string, ok bool) {
	g.busy = false
	if msg.Err != nil {
		g.Message = authFailure(msg.Err)
		g.MessageIsError = true
		return "", false
	}

	g.Message = msg.Message
	g.MessageIsError = false
	if msg.Mode == ModeRegister {
		g.Mode = ModeLogin
		g.Username = ""
		g.Password = ""
		return "", false
	}
	g.Password = ""
	return msg.Username, true
}

func authFailure(err error) string {
	if errors.Is(err, api.ErrUnreachable) {
		return "Network error or server unreachable."
	}
	if text, ok := api.ServerMessage(err); ok {
		return "Error: " + text
	}
	if errors.Is(err, api.ErrMalformed) {
		return "Error: Unexpected response from server."
	}
	return "Error: Something went wrong."
}
