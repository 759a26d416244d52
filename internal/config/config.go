package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DefaultServerURL is used when neither the flag, the environment, nor
// the config file names a backend.
const DefaultServerURL = "http://localhost:8080"

// Config is the persisted client state. Token is the single well-known
// credential: written on login/signup, cleared on logout or 401.
type Config struct {
	ServerURL string `json:"serverUrl,omitempty"`
	Token     string `json:"token,omitempty"`
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.blogtty).
	if v := strings.TrimSpace(os.Getenv("BLOGTTY_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".blogtty"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep a copy of the previous config to make recovery from accidental
	// overwrites easier. Ignore errors to avoid blocking normal usage.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}

	// Unique temp file name + atomic rename so concurrent CLI/TUI writes
	// can't corrupt the file. 0600: the file holds the bearer token.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// ResolveServerURL picks the backend base URL: flag > env > config > default.
func ResolveServerURL(flagValue string, cfg *Config) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("BLOGTTY_SERVER")); v != "" {
		return v
	}
	if cfg != nil && strings.TrimSpace(cfg.ServerURL) != "" {
		return cfg.ServerURL
	}
	return DefaultServerURL
}

// ClearToken drops the persisted token, leaving the rest of the config
// intact. Missing config is not an error.
func ClearToken() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	if cfg.Token == "" {
		return nil
	}
	cfg.Token = ""
	return Save(cfg)
}

// SetToken persists a new token.
func SetToken(token string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.Token = token
	return Save(cfg)
}
