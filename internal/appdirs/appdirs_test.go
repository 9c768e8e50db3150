package appdirs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestEnsureConfigDirUsesPrivatePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not portable on windows")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv(ConfigDirEnv, "")

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat config dir failed: %v", err)
	}
	if perms := info.Mode().Perm(); perms&0o077 != 0 {
		t.Fatalf("expected private config dir permissions, got %o", perms)
	}
}

func TestConfigDirHonorsExplicitOverride(t *testing.T) {
	explicit := filepath.Join(t.TempDir(), "custom")
	t.Setenv(ConfigDirEnv, explicit)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir failed: %v", err)
	}
	if dir != explicit {
		t.Fatalf("expected %q, got %q", explicit, dir)
	}

	locales, err := LocalesDir()
	if err != nil {
		t.Fatalf("LocalesDir failed: %v", err)
	}
	if locales != filepath.Join(explicit, "locales") {
		t.Fatalf("unexpected locales dir %q", locales)
	}
}

func TestConfigFilePathUsesXDGOnLinux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout is linux-specific")
	}
	xdg := t.TempDir()
	t.Setenv(ConfigDirEnv, "")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath failed: %v", err)
	}
	if want := filepath.Join(xdg, AppName, "config.toml"); path != want {
		t.Fatalf("expected %q, got %q", want, path)
	}
}
