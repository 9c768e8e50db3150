package hubext

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ashwch/hubnav/internal/i18n"
	"github.com/ashwch/hubnav/internal/logging"
)

// Command ids registered by Activate.
const (
	CommandControlPanel = "hub:control-panel"
	CommandLogout       = "hub:logout"
	CommandRestart      = "hub:restart"
)

// Command is what the host registry stores under a command id.
type Command struct {
	Label   string
	Caption string
	Execute func() error
}

// Registry is the host command registry. Duplicate ids are handled by the
// registry's own policy.
type Registry interface {
	AddCommand(id string, cmd Command) error
}

// PaletteItem references an already registered command.
type PaletteItem struct {
	Category string `json:"category"`
	Command  string `json:"command"`
}

// Palette is the optional searchable command palette.
type Palette interface {
	AddItem(item PaletteItem)
}

// Navigator performs browser navigation for the host.
type Navigator interface {
	// OpenNew opens url in a new browsing context and leaves the current one alone.
	OpenNew(url string) error
	// SetLocation navigates the current browsing context to url.
	SetLocation(url string) error
}

// Deps are the host collaborators Activate registers against. Palette and
// Logger are optional; a nil Palette skips palette registration.
type Deps struct {
	Registry   Registry
	Translator i18n.Provider
	Navigator  Navigator
	Palette    Palette
	Logger     *slog.Logger
}

var errMissingDependency = errors.New("missing dependency")

func (d Deps) validate() error {
	switch {
	case d.Registry == nil:
		return fmt.Errorf("command registry: %w", errMissingDependency)
	case d.Translator == nil:
		return fmt.Errorf("translator: %w", errMissingDependency)
	case d.Navigator == nil:
		return fmt.Errorf("navigator: %w", errMissingDependency)
	}
	return nil
}

// Activate registers the hub commands when cfg says the host runs under a
// Hub. With an empty prefix it returns immediately without touching deps.
func Activate(cfg Config, deps Deps) error {
	if !cfg.Enabled() {
		return nil
	}

	logging.Debug(deps.Logger, "hub-extension", "found configuration",
		"hubHost", cfg.Host,
		"hubPrefix", cfg.Prefix,
	)

	return RegisterActions(DeriveTargets(cfg), deps)
}

// RegisterActions adds the restart, control panel and logout commands to the
// registry and, when a palette is present, lists control panel and logout in
// it under the "Hub" category.
func RegisterActions(targets Targets, deps Deps) error {
	if err := deps.validate(); err != nil {
		return err
	}
	trans := deps.Translator.Load(i18n.DomainJupyterLab)
	nav := deps.Navigator

	commands := []struct {
		id  string
		cmd Command
	}{
		{
			id: CommandRestart,
			cmd: Command{
				Label:   trans.T("Restart Server"),
				Caption: trans.T("Request that the Hub restart this server"),
				Execute: func() error {
					return nav.OpenNew(targets.RestartURL)
				},
			},
		},
		{
			id: CommandControlPanel,
			cmd: Command{
				Label:   trans.T("Hub Control Panel"),
				Caption: trans.T("Open the Hub control panel in a new browser tab"),
				Execute: func() error {
					return nav.OpenNew(targets.ControlPanelURL)
				},
			},
		},
		{
			id: CommandLogout,
			cmd: Command{
				Label:   trans.T("Log Out"),
				Caption: trans.T("Log out of the Hub"),
				Execute: func() error {
					return nav.SetLocation(targets.LogoutURL)
				},
			},
		},
	}
	for _, entry := range commands {
		if err := deps.Registry.AddCommand(entry.id, entry.cmd); err != nil {
			return fmt.Errorf("register %s: %w", entry.id, err)
		}
	}

	if deps.Palette != nil {
		category := trans.T("Hub")
		deps.Palette.AddItem(PaletteItem{Category: category, Command: CommandControlPanel})
		deps.Palette.AddItem(PaletteItem{Category: category, Command: CommandLogout})
	}
	return nil
}
