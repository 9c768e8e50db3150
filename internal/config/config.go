package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ashwch/hubnav/internal/appdirs"
	"github.com/ashwch/hubnav/internal/hubext"
	"github.com/ashwch/hubnav/internal/i18n"
	"github.com/ashwch/hubnav/internal/urlext"
	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

type HubConfig struct {
	Host       string `toml:"host" json:"host"`
	Prefix     string `toml:"prefix" json:"prefix"`
	User       string `toml:"user" json:"user"`
	ServerName string `toml:"server_name" json:"server_name"`
	BaseURL    string `toml:"base_url" json:"base_url"`
}

type UIConfig struct {
	Backend string `toml:"backend" json:"backend"`
}

type NavigationConfig struct {
	DryRun  bool   `toml:"dry_run" json:"dry_run"`
	Browser string `toml:"browser,omitempty" json:"browser,omitempty"`
}

type Config struct {
	Version    int              `toml:"version" json:"version"`
	Locale     string           `toml:"locale" json:"locale"`
	Hub        HubConfig        `toml:"hub" json:"hub"`
	UI         UIConfig         `toml:"ui" json:"ui"`
	Navigation NavigationConfig `toml:"navigation" json:"navigation"`
}

// envOverrides is the environment a single-user server is started with under
// the Hub, plus hubnav's own knobs. Empty values leave the file setting alone.
type envOverrides struct {
	HubHost       string `env:"JUPYTERHUB_HOST"`
	HubPrefix     string `env:"JUPYTERHUB_HUB_PREFIX"`
	HubBaseURL    string `env:"JUPYTERHUB_BASE_URL"`
	HubUser       string `env:"JUPYTERHUB_USER"`
	HubServerName string `env:"JUPYTERHUB_SERVER_NAME"`
	ServicePrefix string `env:"JUPYTERHUB_SERVICE_PREFIX"`
	Locale        string `env:"HUBNAV_LOCALE"`
	UIBackend     string `env:"HUBNAV_UI"`
	Browser       string `env:"HUBNAV_BROWSER"`
	DryRun        string `env:"HUBNAV_DRY_RUN"`
}

func Default() Config {
	return Config{
		Version: 1,
		Locale:  "auto",
		UI: UIConfig{
			Backend: "auto",
		},
	}
}

// HubExt returns the configuration consumed by the hub extension.
func (c Config) HubExt() hubext.Config {
	return hubext.Config{
		Host:       c.Hub.Host,
		Prefix:     c.Hub.Prefix,
		User:       c.Hub.User,
		ServerName: c.Hub.ServerName,
		BaseURL:    c.Hub.BaseURL,
	}
}

// LoadOrCreate reads the config file, creating it with defaults on first use,
// then applies the process environment.
func LoadOrCreate() (Config, string, error) {
	cfg, path, err := LoadFile()
	if err != nil {
		return Config{}, "", err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

// LoadFile reads the config file without the environment layer, creating it
// with defaults on first use. Use it when the result is written back.
func LoadFile() (Config, string, error) {
	path, err := appdirs.ConfigFilePath()
	if err != nil {
		return Config{}, "", err
	}

	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if _, err := appdirs.EnsureConfigDir(); err != nil {
			return Config{}, "", err
		}
		if err := Save(path, cfg); err != nil {
			return Config{}, "", err
		}
		return cfg, path, nil
	} else if err != nil {
		return Config{}, "", fmt.Errorf("could not stat config path: %w", err)
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, "", fmt.Errorf("could not read config file: %w", err)
	}
	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, "", fmt.Errorf("could not parse config file: %w", err)
	}
	cfg.normalize()
	return cfg, path, nil
}

// ApplyEnv layers environment overrides onto c. A nil environ reads the
// process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	var overrides envOverrides
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&overrides, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setIfPresent(&c.Hub.Host, overrides.HubHost)
	prefix := overrides.HubPrefix
	if strings.TrimSpace(prefix) == "" && strings.TrimSpace(overrides.HubBaseURL) != "" {
		prefix = urlext.Join(overrides.HubBaseURL, "hub/")
	}
	setIfPresent(&c.Hub.Prefix, prefix)
	setIfPresent(&c.Hub.User, overrides.HubUser)
	setIfPresent(&c.Hub.ServerName, overrides.HubServerName)
	setIfPresent(&c.Hub.BaseURL, overrides.ServicePrefix)
	setIfPresent(&c.Navigation.Browser, overrides.Browser)

	if strings.TrimSpace(overrides.Locale) != "" {
		if err := c.Set("locale", overrides.Locale); err != nil {
			return fmt.Errorf("HUBNAV_LOCALE: %w", err)
		}
	}
	if strings.TrimSpace(overrides.UIBackend) != "" {
		if err := c.Set("ui.backend", overrides.UIBackend); err != nil {
			return fmt.Errorf("HUBNAV_UI: %w", err)
		}
	}
	if strings.TrimSpace(overrides.DryRun) != "" {
		if err := c.Set("navigation.dry_run", overrides.DryRun); err != nil {
			return fmt.Errorf("HUBNAV_DRY_RUN: %w", err)
		}
	}
	c.normalize()
	return nil
}

func setIfPresent(target *string, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	*target = strings.TrimSpace(value)
}

func Save(path string, cfg Config) error {
	cfg.normalize()
	payload, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not serialize config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create config dir: %w", err)
	}
	tempFile, err := os.CreateTemp(dir, ".hubnav-config-*.toml")
	if err != nil {
		return fmt.Errorf("could not create temp config file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}

	if _, err := tempFile.Write(payload); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not write temp config file: %w", err)
	}
	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not secure temp config file permissions: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not close temp config file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("could not atomically replace config file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("could not secure config file permissions: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	defaults := Default()
	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if normalized := normalizeLocaleSetting(c.Locale, defaults.Locale); normalized != "" {
		c.Locale = normalized
	} else {
		c.Locale = defaults.Locale
	}
	c.UI.Backend = normalizeUIBackend(c.UI.Backend, defaults.UI.Backend)
	c.Hub.Host = strings.TrimRight(strings.TrimSpace(c.Hub.Host), "/")
	c.Hub.Prefix = strings.TrimSpace(c.Hub.Prefix)
	c.Hub.User = strings.TrimSpace(c.Hub.User)
	c.Hub.ServerName = strings.TrimSpace(c.Hub.ServerName)
	c.Hub.BaseURL = strings.TrimSpace(c.Hub.BaseURL)
	c.Navigation.Browser = strings.TrimSpace(c.Navigation.Browser)
}

var settableKeys = []string{
	"locale",
	"hub.host",
	"hub.prefix",
	"hub.user",
	"hub.server_name",
	"hub.base_url",
	"ui.backend",
	"navigation.dry_run",
	"navigation.browser",
}

// Keys lists the dotted keys accepted by Set and Get.
func Keys() []string {
	return append([]string(nil), settableKeys...)
}

func (c *Config) Set(key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)

	switch key {
	case "locale":
		normalized := normalizeLocaleSetting(value, "")
		if normalized == "" {
			return fmt.Errorf("locale must be 'auto' or a locale like en, en-US, hi, hi-IN")
		}
		c.Locale = normalized
	case "hub.host":
		c.Hub.Host = value
	case "hub.prefix":
		c.Hub.Prefix = value
	case "hub.user":
		c.Hub.User = value
	case "hub.server_name":
		c.Hub.ServerName = value
	case "hub.base_url":
		c.Hub.BaseURL = value
	case "ui.backend":
		backend := normalizeUIBackend(value, "")
		if backend == "" {
			return fmt.Errorf("ui.backend must be one of auto|bubbletea|huh|tview|plain")
		}
		c.UI.Backend = backend
	case "navigation.dry_run":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("navigation.dry_run must be boolean")
		}
		c.Navigation.DryRun = b
	case "navigation.browser":
		c.Navigation.Browser = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	c.normalize()
	return nil
}

func (c Config) Get(key string) (string, error) {
	switch strings.TrimSpace(strings.ToLower(key)) {
	case "locale":
		return c.Locale, nil
	case "hub.host":
		return c.Hub.Host, nil
	case "hub.prefix":
		return c.Hub.Prefix, nil
	case "hub.user":
		return c.Hub.User, nil
	case "hub.server_name":
		return c.Hub.ServerName, nil
	case "hub.base_url":
		return c.Hub.BaseURL, nil
	case "ui.backend":
		return c.UI.Backend, nil
	case "navigation.dry_run":
		return strconv.FormatBool(c.Navigation.DryRun), nil
	case "navigation.browser":
		return c.Navigation.Browser, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool: %s", value)
	}
}

func normalizeUIBackend(value string, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "auto", "bubbletea", "huh", "tview", "plain":
		return normalized
	default:
		return strings.ToLower(strings.TrimSpace(fallback))
	}
}

func normalizeLocaleSetting(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = strings.TrimSpace(fallback)
	}
	if strings.EqualFold(trimmed, "auto") {
		return "auto"
	}
	return i18n.NormalizeLocale(trimmed)
}
