package main

import (
	"errors"
	"log/slog"

	"github.com/ashwch/hubnav/internal/config"
	"github.com/ashwch/hubnav/internal/hubext"
	"github.com/ashwch/hubnav/internal/i18n"
	"github.com/ashwch/hubnav/internal/logging"
	"github.com/ashwch/hubnav/internal/navigate"
	"github.com/ashwch/hubnav/internal/registry"
	"github.com/ashwch/hubnav/internal/runtime"
	"github.com/spf13/cobra"
)

const notUnderHubMessage = "Not running under a Hub; no commands registered"

// Hooks swapped by tests.
var (
	loadConfig       = config.LoadOrCreate
	openURL          = runtime.OpenURL
	stdinInteractive = runtime.IsInteractive
)

// session is one activation of the hub extension against the bundled
// registry, palette and navigator.
type session struct {
	cfg        config.Config
	logger     *slog.Logger
	translator i18n.Translator
	commands   *registry.Commands
	palette    *registry.Palette
	navigator  *navigate.Recorder
}

func newSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cmd.ErrOrStderr(), opts.debug)
	locale := cfg.Locale
	if locale == "auto" {
		locale = ""
	}
	catalog := i18n.LoadCatalog(locale)

	s := &session{
		cfg:        cfg,
		logger:     logger,
		translator: catalog.Load(i18n.DomainJupyterLab),
		commands:   registry.NewCommands(),
		palette:    registry.NewPalette(),
	}
	var target navigate.Navigator
	if cfg.Navigation.DryRun {
		// JSON mode owns stdout.
		out := cmd.OutOrStdout()
		if opts.jsonOutput {
			out = cmd.ErrOrStderr()
		}
		target = navigate.NewPrinter(out)
	} else {
		browser := cfg.Navigation.Browser
		target = navigate.NewBrowser(func(url string) error {
			return openURL(url, browser)
		})
	}
	s.navigator = navigate.NewRecorder(target)

	deps := hubext.Deps{
		Registry:   s.commands,
		Translator: catalog,
		Navigator:  s.navigator,
		Palette:    s.palette,
		Logger:     logger,
	}
	if err := hubext.ActivateAll(cfg.HubExt(), deps); err != nil {
		logging.Error(logger, "hubnav", "activation failed", "error", err.Error())
		return nil, err
	}
	return s, nil
}

// resolveConfig layers explicitly set flags over the file and environment.
func resolveConfig(cmd *cobra.Command, opts *globalOptions) (config.Config, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return config.Config{}, err
	}

	overrides := []struct {
		flag  string
		key   string
		value string
	}{
		{flag: "hub-host", key: "hub.host", value: opts.hubHost},
		{flag: "hub-prefix", key: "hub.prefix", value: opts.hubPrefix},
		{flag: "hub-user", key: "hub.user", value: opts.hubUser},
		{flag: "hub-server-name", key: "hub.server_name", value: opts.hubServerName},
		{flag: "base-url", key: "hub.base_url", value: opts.baseURL},
		{flag: "locale", key: "locale", value: opts.locale},
		{flag: "ui", key: "ui.backend", value: opts.ui},
	}
	for _, override := range overrides {
		if !cmd.Flags().Changed(override.flag) {
			continue
		}
		if err := cfg.Set(override.key, override.value); err != nil {
			return config.Config{}, usageErrorf("--%s: %w", override.flag, err)
		}
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.Navigation.DryRun = opts.dryRun
	}
	return cfg, nil
}

func (s *session) notUnderHub() error {
	return errors.New(s.translator.T(notUnderHubMessage))
}
