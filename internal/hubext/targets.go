package hubext

import "github.com/ashwch/hubnav/internal/urlext"

// Config is the raw hub configuration supplied by the host. Every field may be
// empty.
type Config struct {
	Host       string `json:"hub_host"`
	Prefix     string `json:"hub_prefix"`
	User       string `json:"hub_user"`
	ServerName string `json:"hub_server_name"`
	BaseURL    string `json:"base_url"`
}

// Enabled reports whether the host runs under a Hub.
func (c Config) Enabled() bool {
	return c.Prefix != ""
}

// Targets are the navigation URLs derived from a Config.
type Targets struct {
	RestartURL      string `json:"restart_url"`
	ControlPanelURL string `json:"control_panel_url"`
	LogoutURL       string `json:"logout_url"`
}

// DeriveTargets computes the navigation URLs for cfg. It has no side effects.
func DeriveTargets(cfg Config) Targets {
	return Targets{
		RestartURL:      restartURL(cfg),
		ControlPanelURL: cfg.Host + urlext.Join(cfg.Prefix, "home"),
		LogoutURL:       cfg.Host + urlext.Join(cfg.BaseURL, "logout"),
	}
}

// A named server needs the per-user spawn URL; the bare form only addresses
// the user's default server.
func restartURL(cfg Config) string {
	if cfg.ServerName != "" {
		return cfg.Host + urlext.Join(cfg.Prefix, "spawn", cfg.User, cfg.ServerName)
	}
	return cfg.Host + urlext.Join(cfg.Prefix, "spawn")
}
