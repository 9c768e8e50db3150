package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ashwch/hubnav/internal/hubext"
	"github.com/ashwch/hubnav/internal/registry"
	"github.com/ashwch/hubnav/internal/ui"
	"github.com/spf13/cobra"
)

type targetsPayload struct {
	Active       bool   `json:"active"`
	Restart      string `json:"restart,omitempty"`
	ControlPanel string `json:"control_panel,omitempty"`
	Logout       string `json:"logout,omitempty"`
}

func newTargetsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "Print the Hub URLs derived from the current configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return printTargets(cmd, opts, s.cfg.HubExt())
		},
	}
}

func printTargets(cmd *cobra.Command, opts *globalOptions, cfg hubext.Config) error {
	out := cmd.OutOrStdout()
	if !cfg.Enabled() {
		if opts.jsonOutput {
			return writeJSON(out, targetsPayload{Active: false})
		}
		_, err := fmt.Fprintln(out, "inactive")
		return err
	}

	targets := hubext.DeriveTargets(cfg)
	if opts.jsonOutput {
		return writeJSON(out, targetsPayload{
			Active:       true,
			Restart:      targets.RestartURL,
			ControlPanel: targets.ControlPanelURL,
			Logout:       targets.LogoutURL,
		})
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", hubext.CommandRestart, targets.RestartURL)
	fmt.Fprintf(w, "%s\t%s\n", hubext.CommandControlPanel, targets.ControlPanelURL)
	fmt.Fprintf(w, "%s\t%s\n", hubext.CommandLogout, targets.LogoutURL)
	return w.Flush()
}

func newCommandsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the registered Hub commands",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			entries := s.commands.Entries()
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				if entries == nil {
					entries = []registry.Entry{}
				}
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				_, err := fmt.Fprintln(out, s.translator.T(notUnderHubMessage))
				return err
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", entry.ID, entry.Label, entry.Caption)
			}
			return w.Flush()
		},
	}
}

func newRunCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <command-id>",
		Short: "Execute a registered Hub command",
		Example: "  hubnav run hub:control-panel\n" +
			"  hubnav --dry-run run hub:logout",
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.execute(cmd, opts, args[0])
		},
	}
}

func (s *session) execute(cmd *cobra.Command, opts *globalOptions, id string) error {
	if !s.cfg.HubExt().Enabled() {
		return s.notUnderHub()
	}
	if !s.commands.Has(id) {
		return usageErrorf("%s: %w", id, registry.ErrUnknownCommand)
	}
	if err := s.commands.Execute(id); err != nil {
		return err
	}
	if opts.jsonOutput {
		payload := map[string]any{
			"success":    true,
			"command":    id,
			"navigation": s.navigator.Visits(),
		}
		if location := s.navigator.Location(); location != "" {
			payload["location"] = location
		}
		return writeJSON(cmd.OutOrStdout(), payload)
	}
	return nil
}

func newPaletteCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Pick a Hub command from the palette and run it",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			options, err := s.paletteOptions()
			if err != nil {
				return err
			}
			if len(options) == 0 {
				return s.notUnderHub()
			}

			prompt := ui.Prompt{
				Backend:     s.cfg.UI.Backend,
				Title:       s.translator.T("Hub commands"),
				Interactive: stdinInteractive(),
				In:          cmd.InOrStdin(),
				Out:         cmd.OutOrStdout(),
			}
			id, ok, err := ui.PickCommand(prompt, options)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			return s.execute(cmd, opts, id)
		},
	}
}

func (s *session) paletteOptions() ([]ui.PaletteOption, error) {
	items := s.palette.Items()
	options := make([]ui.PaletteOption, 0, len(items))
	for _, item := range items {
		entry, err := s.commands.Describe(item.Command)
		if err != nil {
			return nil, fmt.Errorf("palette item %s: %w", item.Command, err)
		}
		options = append(options, ui.PaletteOption{
			Category: item.Category,
			Command:  entry.ID,
			Label:    entry.Label,
			Caption:  entry.Caption,
		})
	}
	return options, nil
}
