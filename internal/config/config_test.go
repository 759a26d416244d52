package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileIsEmptyConfig(t *testing.T) {
	t.Setenv("BLOGTTY_CONFIG_DIR", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.Token != "" || cfg.ServerURL != "" {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("BLOGTTY_CONFIG_DIR", t.TempDir())

	if err := Save(&Config{ServerURL: "http://blog.local", Token: "tok"}); err != nil {
		t.Fatalf("Save: unexpected error: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.ServerURL != "http://blog.local" || cfg.Token != "tok" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	path, err := Path()
	if err != nil {
		t.Fatalf("Path: unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: unexpected error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}
}

func TestSaveKeepsBackup(t *testing.T) {
	t.Setenv("BLOGTTY_CONFIG_DIR", t.TempDir())

	if err := Save(&Config{Token: "first"}); err != nil {
		t.Fatalf("Save: unexpected error: %v", err)
	}
	if err := Save(&Config{Token: "second"}); err != nil {
		t.Fatalf("Save: unexpected error: %v", err)
	}

	path, _ := Path()
	bak, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if !strings.Contains(string(bak), `"first"`) {
		t.Fatalf("expected backup to hold previous token, got %s", bak)
	}
}

func TestSetAndClearToken(t *testing.T) {
	t.Setenv("BLOGTTY_CONFIG_DIR", t.TempDir())

	if err := Save(&Config{ServerURL: "http://blog.local"}); err != nil {
		t.Fatalf("Save: unexpected error: %v", err)
	}
	if err := SetToken("tok-1"); err != nil {
		t.Fatalf("SetToken: unexpected error: %v", err)
	}
	cfg, _ := Load()
	if cfg.Token != "tok-1" {
		t.Fatalf("expected token persisted, got %+v", cfg)
	}

	if err := ClearToken(); err != nil {
		t.Fatalf("ClearToken: unexpected error: %v", err)
	}
	cfg, _ = Load()
	if cfg.Token != "" {
		t.Fatalf("expected token cleared, got %+v", cfg)
	}
	// The rest of the config survives a token clear.
	if cfg.ServerURL != "http://blog.local" {
		t.Fatalf("expected server URL kept, got %+v", cfg)
	}
}

func TestClearTokenWithoutConfig(t *testing.T) {
	t.Setenv("BLOGTTY_CONFIG_DIR", t.TempDir())
	if err := ClearToken(); err != nil {
		t.Fatalf("ClearToken on missing config: unexpected error: %v", err)
	}
}

func TestResolveServerURL(t *testing.T) {
	t.Setenv("BLOGTTY_SERVER", "")

	cases := []struct {
		flag string
		env  string
		cfg  *Config
		want string
	}{
		{"http://flag", "http://env", &Config{ServerURL: "http://cfg"}, "http://flag"},
		{"", "http://env", &Config{ServerURL: "http://cfg"}, "http://env"},
		{"", "", &Config{ServerURL: "http://cfg"}, "http://cfg"},
		{"", "", &Config{}, DefaultServerURL},
		{"", "", nil, DefaultServerURL},
	}
	for _, tc := range cases {
		t.Setenv("BLOGTTY_SERVER", tc.env)
		if got := ResolveServerURL(tc.flag, tc.cfg); got != tc.want {
			t.Fatalf("ResolveServerURL(%q, env=%q): expected %q, got %q", tc.flag, tc.env, tc.want, got)
		}
	}
}

func TestDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BLOGTTY_CONFIG_DIR", dir)
	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir: unexpected error: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}
	path, _ := Path()
	if path != filepath.Join(dir, "config.json") {
		t.Fatalf("unexpected path %q", path)
	}
}
