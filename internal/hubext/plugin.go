package hubext

import "fmt"

// Plugin ids, matching the host's extension manifest.
const (
	PluginHubExtension = "jupyter.extensions.hub-extension"
	PluginHubMenu      = "jupyter.extensions.hub-extension:plugin"
)

// Plugin describes one activatable unit of this package.
type Plugin struct {
	ID        string
	Requires  []string
	Optional  []string
	AutoStart bool
	Activate  func(cfg Config, deps Deps) error
}

// Plugins returns the plugins this package contributes, in activation order.
func Plugins() []Plugin {
	return []Plugin{
		{
			ID:        PluginHubExtension,
			Requires:  []string{"paths", "translator"},
			Optional:  []string{"palette"},
			AutoStart: true,
			Activate:  Activate,
		},
		{
			ID:        PluginHubMenu,
			AutoStart: true,
			Activate: func(Config, Deps) error {
				ActivateMenu()
				return nil
			},
		},
	}
}

// ActivateMenu is the activation of the settings-driven hub menu plugin. The
// menu itself is described by host settings, so there is nothing to do here.
func ActivateMenu() {}

// ActivateAll runs every auto-start plugin in order and stops at the first error.
func ActivateAll(cfg Config, deps Deps) error {
	for _, plugin := range Plugins() {
		if !plugin.AutoStart {
			continue
		}
		if err := plugin.Activate(cfg, deps); err != nil {
			return fmt.Errorf("activate %s: %w", plugin.ID, err)
		}
	}
	return nil
}
