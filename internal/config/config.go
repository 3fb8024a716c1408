package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Maps state.dir to AUTHBOX_STATE_DIR and runtime.dir to AUTHBOX_RUNTIME_DIR.
var envKeyReplacer = strings.NewReplacer(".", "_")

const (
	configName    = "config"
	configType    = "toml"
	configDirName = "authbox"

	stateDirKey   = "state.dir"
	runtimeDirKey = "runtime.dir"
)

// Config carries the two storage roots. StateDir holds durable state and
// survives restarts; RuntimeDir holds session-scoped state and lives in a
// location the OS wipes when the login session ends.
type Config struct {
	StateDir   string
	RuntimeDir string
}

// Load resolves the configuration from an optional config.toml under the user
// config directory, AUTHBOX_* environment variables and built-in defaults, in
// ascending precedence of default < file < environment.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	if configDir, err := os.UserConfigDir(); err == nil {
		cfg.AddConfigPath(filepath.Join(configDir, configDirName))
	}

	cfg.SetEnvPrefix("AUTHBOX")
	cfg.SetEnvKeyReplacer(envKeyReplacer)
	cfg.AutomaticEnv()

	stateDir, err := defaultStateDir()
	if err != nil {
		return Config{}, err
	}
	cfg.SetDefault(stateDirKey, stateDir)
	cfg.SetDefault(runtimeDirKey, defaultRuntimeDir())

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	resolvedState, err := normalizeDir(cfg.GetString(stateDirKey), stateDirKey)
	if err != nil {
		return Config{}, err
	}
	resolvedRuntime, err := normalizeDir(cfg.GetString(runtimeDirKey), runtimeDirKey)
	if err != nil {
		return Config{}, err
	}

	return Config{StateDir: resolvedState, RuntimeDir: resolvedRuntime}, nil
}

// defaultStateDir follows XDG: $XDG_STATE_HOME/authbox, else ~/.local/state/authbox.
func defaultStateDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, configDirName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, ".local", "state", configDirName), nil
}

// defaultRuntimeDir prefers $XDG_RUNTIME_DIR, which the OS clears at the end
// of the login session, falling back to a temp path with the same lifetime
// expectations.
func defaultRuntimeDir() string {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return filepath.Join(runtimeDir, configDirName)
	}

	return filepath.Join(os.TempDir(), "authbox-session")
}

func normalizeDir(path, key string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%s is empty", key)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", key, err)
	}

	return filepath.Clean(absPath), nil
}
