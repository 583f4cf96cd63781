package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mindease/pkg/api"
)

// Settings is the password change form for the session identity.
type Settings struct {
	ctx     context.Context
	backend Backend

	identity   string
	generation uint64

	OldPassword     string
	NewPassword     string
	ConfirmPassword string

	Notice NoticeSlot

	busy bool
}

// NewSettings returns an empty settings panel.
func NewSettings(ctx context.Context, backend Backend) *Settings {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Settings{ctx: ctx, backend: backend}
}

// SetIdentity binds the panel to identity and clears the form.
func (s *Settings) SetIdentity(identity string) {
	s.generation++
	s.identity = identity
	s.clear()
	s.busy = false
	s.Notice.Dismiss()
}

// Busy reports whether a change request is in flight.
func (s *Settings) Busy() bool { return s.busy }

func (s *Settings) clear() {
	s.OldPassword = ""
	s.NewPassword = ""
	s.ConfirmPassword = ""
}

// ChangePassword validates the form and sends the change request. Mismatched
// or short passwords raise a notice without contacting the backend.
func (s *Settings) ChangePassword() tea.Cmd {
	if s.busy {
		return nil
	}
	if s.identity == "" {
		s.Notice.Show("Login Required", "Please log in to change your password.", NoticeInfo)
		return nil
	}
	if err := ValidatePasswordChange(s.OldPassword, s.NewPassword, s.ConfirmPassword); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			s.Notice.Show(ve.Title, ve.Message, NoticeError)
		}
		return nil
	}

	s.busy = true
	ctx, backend, gen := s.ctx, s.backend, s.generation
	identity, oldPassword, newPassword := s.identity, s.OldPassword, s.NewPassword
	return func() tea.Msg {
		msg, err := backend.ChangePassword(ctx, identity, oldPassword, newPassword)
		return PasswordChangedMsg{Generation: gen, Message: msg, Err: err}
	}
}

// Apply folds the change result into the form. Fields are cleared only on
// success.
func (s *Settings) Apply(msg PasswordChangedMsg) {
	if msg.Generation != s.generation {
		return
	}
	s.busy = false
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, api.ErrUnreachable):
			s.Notice.Show("Network Error", "Could not connect to the server. Please try again.", NoticeError)
		default:
			if text, ok := api.ServerMessage(msg.Err); ok {
				s.Notice.Show("Error", text, NoticeError)
			} else {
				s.Notice.Show("Error", "Failed to change password.", NoticeError)
			}
		}
		return
	}
	text := msg.Message
	if text == "" {
		text = "Password updated successfully!"
	}
	s.clear()
	s.Notice.Show("Success", text, NoticeSuccess)
}
