package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) (home, cfgDir string) {
	t.Helper()
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	home = t.TempDir()
	cfgDir = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(PathEnv, cfgDir)
	for _, key := range []string{"BACKEND_URL", "USERNAME", "LOG_FILE", "LOG_LEVEL", "REQUEST_TIMEOUT"} {
		t.Setenv(envPrefix+"_"+key, "")
		os.Unsetenv(envPrefix + "_" + key)
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home, cfgDir
}

func TestLoadDefaults(t *testing.T) {
	home, _ := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Empty(t, cfg.Username)
	assert.Equal(t, filepath.Join(home, ".mindease", "mindease.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.RequestTimeout)
}

func TestLoadFileAndEnv(t *testing.T) {
	_, dir := isolate(t)
	body := "backend_url: http://journal.local:8080\nusername: alice\nrequest_timeout: 15s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mindease.yaml"), []byte(body), 0o644))
	t.Setenv("MINDEASE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://journal.local:8080", cfg.BackendURL)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, ".mindease.yaml"), cfg.File())
}

func TestSaveAndClearUsername(t *testing.T) {
	_, dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.SaveUsername("bob"))
	assert.FileExists(t, filepath.Join(dir, ".mindease.yaml"))

	again, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "bob", again.Username)

	require.NoError(t, again.ClearUsername())
	third, err := Load()
	require.NoError(t, err)
	assert.Empty(t, third.Username)
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	isolate(t)
	t.Setenv("MINDEASE_REQUEST_TIMEOUT", "-1s")
	_, err := Load()
	assert.Error(t, err)
}
