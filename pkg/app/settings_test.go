package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/mindease/pkg/api"
)

func newSettings(f *fakeBackend) *Settings {
	s := NewSettings(context.Background(), f)
	s.SetIdentity("alice")
	return s
}

func fill(s *Settings, oldPassword, newPassword, confirm string) {
	s.OldPassword = oldPassword
	s.NewPassword = newPassword
	s.ConfirmPassword = confirm
}

func TestChangePasswordValidation(t *testing.T) {
	cases := map[string]struct {
		old, new, confirm string
		title             string
	}{
		"mismatch":      {old: "secret", new: "abcdef", confirm: "abcdeg", title: "Password Mismatch"},
		"too short":     {old: "secret", new: "abc", confirm: "abc", title: "Password Too Short"},
		"mismatch wins": {old: "secret", new: "abc", confirm: "abd", title: "Password Mismatch"},
		"no old":        {new: "abcdef", confirm: "abcdef", title: "Password Required"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := &fakeBackend{}
			s := newSettings(f)
			fill(s, tc.old, tc.new, tc.confirm)
			assert.Nil(t, s.ChangePassword())
			assert.Empty(t, f.Calls("passwd"))
			n, ok := s.Notice.Current()
			require.True(t, ok)
			assert.Equal(t, tc.title, n.Title)
			assert.Equal(t, NoticeError, n.Type)
		})
	}
}

func TestChangePasswordSuccessClearsFields(t *testing.T) {
	f := &fakeBackend{pwMsg: "Password updated successfully"}
	s := newSettings(f)
	fill(s, "secret", "abcdef", "abcdef")

	cmd := s.ChangePassword()
	require.NotNil(t, cmd)
	assert.True(t, s.Busy())
	assert.Nil(t, s.ChangePassword())

	s.Apply(cmd().(PasswordChangedMsg))

	assert.Equal(t, []call{{Op: "passwd", Args: []string{"alice", "secret", "abcdef"}}}, f.Calls("passwd"))
	assert.False(t, s.Busy())
	assert.Empty(t, s.OldPassword)
	assert.Empty(t, s.NewPassword)
	assert.Empty(t, s.ConfirmPassword)
	n, _ := s.Notice.Current()
	assert.Equal(t, "Success", n.Title)
	assert.Equal(t, "Password updated successfully", n.Message)
}

func TestChangePasswordFailureKeepsFields(t *testing.T) {
	cases := map[string]struct {
		err     error
		title   string
		message string
	}{
		"wrong old password": {
			err:   &api.StatusError{Op: "passwd", Code: 401, Message: "Incorrect old password", Structured: true},
			title: "Error", message: "Incorrect old password",
		},
		"bare status": {
			err:   &api.StatusError{Op: "passwd", Code: 500},
			title: "Error", message: "Failed to change password.",
		},
		"unreachable": {
			err:   unreachable(),
			title: "Network Error", message: "Could not connect to the server. Please try again.",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := &fakeBackend{pwErr: tc.err}
			s := newSettings(f)
			fill(s, "secret", "abcdef", "abcdef")
			s.Apply(s.ChangePassword()().(PasswordChangedMsg))

			assert.Equal(t, "secret", s.OldPassword)
			assert.Equal(t, "abcdef", s.NewPassword)
			n, _ := s.Notice.Current()
			assert.Equal(t, tc.title, n.Title)
			assert.Equal(t, tc.message, n.Message)
		})
	}
}

func TestChangePasswordStaleAfterIdentityChange(t *testing.T) {
	f := &fakeBackend{pwMsg: "ok"}
	s := newSettings(f)
	fill(s, "secret", "abcdef", "abcdef")
	msg := s.ChangePassword()().(PasswordChangedMsg)
	s.SetIdentity("")
	s.Apply(msg)
	assert.False(t, s.Notice.IsOpen())
}
