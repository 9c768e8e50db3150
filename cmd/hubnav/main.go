package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// usageError marks failures caused by how hubnav was invoked. They exit 2.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hubnav: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage usageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

// globalOptions holds the persistent flags. They override the config file and
// the environment for a single invocation.
type globalOptions struct {
	hubHost       string
	hubPrefix     string
	hubUser       string
	hubServerName string
	baseURL       string
	locale        string
	ui            string
	debug         bool
	dryRun        bool
	jsonOutput    bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "hubnav",
		Short:         "Hub navigation commands for single-user servers",
		Long:          "hubnav detects whether it runs under a Hub and exposes the Hub's restart, control panel and logout actions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&opts.hubHost, "hub-host", "", "Hub origin, e.g. https://hub.example.com")
	flags.StringVar(&opts.hubPrefix, "hub-prefix", "", "Hub path prefix, e.g. /hub/ (empty disables the Hub commands)")
	flags.StringVar(&opts.hubUser, "hub-user", "", "Hub user name")
	flags.StringVar(&opts.hubServerName, "hub-server-name", "", "named server, empty for the default server")
	flags.StringVar(&opts.baseURL, "base-url", "", "base URL of this server, e.g. /user/alice/")
	flags.StringVar(&opts.locale, "locale", "", "message locale (auto, en, hi, ...)")
	flags.StringVar(&opts.ui, "ui", "", "palette UI backend: auto|bubbletea|huh|tview|plain")
	flags.BoolVar(&opts.debug, "debug", false, "write debug logs to stderr")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print navigation instead of opening a browser")
	flags.BoolVar(&opts.jsonOutput, "json", false, "output in JSON format")

	root.AddCommand(
		newTargetsCommand(opts),
		newCommandsCommand(opts),
		newRunCommand(opts),
		newPaletteCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(opts),
	)
	return root
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

func newVersionCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the hubnav version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}

func writeJSON(w io.Writer, data any) error {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(payload))
	return err
}
