package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// ErrNoSession is returned by commands that need a logged in user.
var ErrNoSession = errors.New("not logged in, run `mindease login` first")

// SessionOptions selects whose journal a command works on.
type SessionOptions struct {
	User string
}

func AddSessionArgs(cmd *cobra.Command, o *SessionOptions) {
	cmd.Flags().StringVarP(&o.User, "user", "u", "",
		"Act as this user instead of the one remembered by `mindease login`.")
}

// Resolve returns the --user override, falling back to remembered.
func (o *SessionOptions) Resolve(remembered string) (string, error) {
	if u := strings.TrimSpace(o.User); u != "" {
		return u, nil
	}
	if u := strings.TrimSpace(remembered); u != "" {
		return u, nil
	}
	return "", ErrNoSession
}
