// Package commands builds the contactdesk command tree. The root command runs
// the TUI; the subcommands script the same desk operations from a shell.
package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/contactdesk/internal/app"
	"github.com/five82/contactdesk/internal/desk"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	ConfigPath string
	BaseURL    string
	Poll       time.Duration
	Verbose    bool
}

func (o *rootOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath: o.ConfigPath,
		BaseURL:    o.BaseURL,
		PollEvery:  o.Poll,
		Verbose:    o.Verbose,
	}
}

// open builds a session whose notifications print to the command's output.
func (o *rootOptions) open(cmd *cobra.Command, extra ...desk.Option) (*app.Session, error) {
	opts := append([]desk.Option{desk.WithNotifier(printNotifier(cmd.OutOrStdout()))}, extra...)
	return app.Open(o.appOptions(), opts...)
}

// New returns the root command.
func New() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "contactdesk",
		Short: "Manage contacts on a contacts API from the terminal.",
		Long: `contactdesk keeps a live, filterable view of the contacts served by a
contacts API. Without a subcommand it starts the interactive TUI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), o.appOptions())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.ConfigPath, "config", "", "config file (default ~/.config/contactdesk/config.toml)")
	flags.StringVar(&o.BaseURL, "base-url", "", "contacts API base URL (overrides config and $CONTACTDESK_BASE_URL)")
	flags.DurationVar(&o.Poll, "poll", 0, "TUI refresh interval (default from config, 5s)")
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "log at debug level")

	AddCommands(cmd, o)
	return cmd
}

// AddCommands registers the subcommands on topLevel.
func AddCommands(topLevel *cobra.Command, o *rootOptions) {
	addList(topLevel, o)
	addGroups(topLevel, o)
	addExport(topLevel, o)
	addAdd(topLevel, o)
	addUpdate(topLevel, o)
	addDelete(topLevel, o)
	addBlacklist(topLevel, o)
}
