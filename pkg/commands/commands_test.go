package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/mindease/pkg/config"
	"tableflip.dev/mindease/pkg/mockbackend"
)

func init() {
	color.NoColor = true
}

// setup isolates the config and log files and starts a mock backend. It
// returns the backend URL.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.PathEnv, dir)
	t.Setenv("MINDEASE_LOG_FILE", filepath.Join(dir, "mindease.log"))
	t.Setenv("MINDEASE_USERNAME", "")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = mockbackend.NewServer(mockbackend.NewStore(), nil).Serve(ctx, ln) }()
	return "http://" + ln.Addr().String()
}

func run(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--backend", url}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestStatus(t *testing.T) {
	url := setup(t)
	out, err := run(t, url, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Backend: success")
	assert.Contains(t, out, "Database: connected")
}

func TestNeedsLogin(t *testing.T) {
	url := setup(t)
	_, err := run(t, url, "entries")
	assert.ErrorContains(t, err, "not logged in")

	out, err := run(t, url, "entries", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"error"`)
}

func TestJournalFlow(t *testing.T) {
	url := setup(t)

	_, err := run(t, url, "register", "-n", "alice", "-p", "pw123")
	require.NoError(t, err)

	out, err := run(t, url, "login", "-n", "alice", "-p", "pw123")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice.")

	out, err = run(t, url, "write", "Went", "for", "a", "walk.")
	require.NoError(t, err)
	assert.Contains(t, out, "Journal entry saved successfully!")

	_, err = run(t, url, "write")
	assert.ErrorContains(t, err, "entry text is required")

	out, err = run(t, url, "entries", "--json")
	require.NoError(t, err)
	var entries []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Went for a walk.", entries[0].Text)

	out, err = run(t, url, "insight", entries[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "AI Insight:")

	out, err = run(t, url, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Total")

	_, err = run(t, url, "period", "--start", "2024-02-01", "--end", "2024-01-01")
	assert.Error(t, err)

	out, err = run(t, url, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "You have been successfully logged out.")

	_, err = run(t, url, "prompt")
	assert.ErrorContains(t, err, "not logged in")

	out, err = run(t, url, "prompt", "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Suggested Prompt:")
}

func TestVersion(t *testing.T) {
	url := setup(t)
	out, err := run(t, url, "version", "-s")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}
