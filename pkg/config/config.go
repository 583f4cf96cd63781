package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	KeyBackendURL     = "backend_url"
	KeyUsername       = "username"
	KeyLogFile        = "log_file"
	KeyLogLevel       = "log_level"
	KeyRequestTimeout = "request_timeout"

	// DefaultBackendURL matches the backend's development server.
	DefaultBackendURL = "http://127.0.0.1:5000"

	configName = ".mindease"
	envPrefix  = "MINDEASE"
	// PathEnv names an extra directory searched for the config file.
	PathEnv = "MINDEASE_CONFIG_PATH"
)

// Config is the resolved client configuration.
type Config struct {
	BackendURL     string
	Username       string
	LogFile        string
	LogLevel       string
	RequestTimeout time.Duration

	v *viper.Viper
}

// Load reads .mindease.yaml from $MINDEASE_CONFIG_PATH, the working
// directory and $HOME, in that order. A missing file is not an error;
// MINDEASE_* environment variables override file values.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyBackendURL, DefaultBackendURL)
	v.SetDefault(KeyLogFile, "~/.mindease/mindease.log")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyRequestTimeout, "0s")
	v.SetConfigName(configName) // .yaml is implicit
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(PathEnv); override != "" {
		dir, err := homedir.Expand(override)
		if err != nil {
			return nil, fmt.Errorf("config: expanding %s: %w", PathEnv, err)
		}
		v.AddConfigPath(dir)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	logFile, err := homedir.Expand(v.GetString(KeyLogFile))
	if err != nil {
		return nil, fmt.Errorf("config: expanding %s: %w", KeyLogFile, err)
	}
	timeout := v.GetDuration(KeyRequestTimeout)
	if timeout < 0 {
		return nil, fmt.Errorf("config: %s must not be negative", KeyRequestTimeout)
	}
	return &Config{
		BackendURL:     v.GetString(KeyBackendURL),
		Username:       v.GetString(KeyUsername),
		LogFile:        logFile,
		LogLevel:       v.GetString(KeyLogLevel),
		RequestTimeout: timeout,
		v:              v,
	}, nil
}

// File returns the config file that was read, or the file that SaveUsername
// would create.
func (c *Config) File() string {
	if used := c.v.ConfigFileUsed(); used != "" {
		return used
	}
	if dir := os.Getenv(PathEnv); dir != "" {
		if expanded, err := homedir.Expand(dir); err == nil {
			return filepath.Join(expanded, configName+".yaml")
		}
	}
	home, err := homedir.Dir()
	if err != nil {
		return configName + ".yaml"
	}
	return filepath.Join(home, configName+".yaml")
}

// SaveUsername remembers the session identity for later commands.
func (c *Config) SaveUsername(username string) error {
	c.v.Set(KeyUsername, username)
	c.Username = username
	return c.write()
}

// ClearUsername forgets the remembered identity.
func (c *Config) ClearUsername() error {
	return c.SaveUsername("")
}

// SetBackendURL updates the backend address and persists it.
func (c *Config) SetBackendURL(url string) error {
	c.v.Set(KeyBackendURL, url)
	c.BackendURL = url
	return c.write()
}

func (c *Config) write() error {
	path := c.File()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
