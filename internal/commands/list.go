package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/contactdesk/internal/app"
	"github.com/five82/contactdesk/internal/contacts"
	"github.com/five82/contactdesk/internal/render"
	"github.com/five82/contactdesk/internal/sanitize"
)

// filterOptions select which contacts list and export show.
type filterOptions struct {
	Group       string
	Blacklisted string
	Search      string
}

func addFilterFlags(cmd *cobra.Command, f *filterOptions) {
	cmd.Flags().StringVar(&f.Group, "group", "", "only contacts in this group (server side)")
	cmd.Flags().StringVar(&f.Blacklisted, "blacklisted", "", "true or false to filter on the blacklist flag (server side)")
	cmd.Flags().StringVar(&f.Search, "search", "", "keyword matched against name, phone, email, group, and note")
}

func (f filterOptions) listFilter() (contacts.ListFilter, error) {
	switch f.Blacklisted {
	case render.BlacklistAll, render.BlacklistYes, render.BlacklistNo:
	default:
		return contacts.ListFilter{}, fmt.Errorf("invalid --blacklisted %q: want true or false", f.Blacklisted)
	}
	return contacts.ListFilter{Group: f.Group, Blacklisted: render.ParseBlacklist(f.Blacklisted)}, nil
}

// load fetches the filtered contact list and applies the keyword.
func (f filterOptions) load(ctx context.Context, sess *app.Session) ([]contacts.Contact, error) {
	filter, err := f.listFilter()
	if err != nil {
		return nil, err
	}
	sess.Store.SetFilter(filter)
	sess.Desk.SetSearch(f.Search)
	if err := sess.Desk.RefreshContacts(ctx); err != nil {
		return nil, err
	}
	return sess.Store.Snapshot().Visible(), nil
}

func addList(topLevel *cobra.Command, o *rootOptions) {
	f := &filterOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print contacts as a table",
		Example: `
contactdesk list
contactdesk list --group Work --blacklisted false
contactdesk list --search alice
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			list, err := f.load(cmd.Context(), sess)
			if err != nil {
				return err
			}
			printContacts(cmd.OutOrStdout(), render.TableWith(list, sanitize.ForTerminal))
			return nil
		},
	}
	addFilterFlags(cmd, f)
	topLevel.AddCommand(cmd)
}

func addGroups(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Print the distinct group names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			groups, err := sess.Client.ListGroups(cmd.Context())
			if err != nil {
				return fmt.Errorf("list groups: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, g := range groups {
				_, _ = fmt.Fprintln(out, sanitize.ForTerminal(g))
			}
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command, o *rootOptions) {
	f := &filterOptions{}
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write contacts as an HTML table",
		Example: `
contactdesk export --out contacts.html
contactdesk export --group Family > family.html
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			list, err := f.load(cmd.Context(), sess)
			if err != nil {
				return err
			}

			table := render.Table(list)
			if outPath == "" || outPath == "-" {
				if err := render.WriteHTML(cmd.OutOrStdout(), table); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				return nil
			}
			return exportFile(outPath, table)
		},
	}
	addFilterFlags(cmd, f)
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file, - for stdout")
	topLevel.AddCommand(cmd)
}

// exportFile writes table to path. A failed close is reported because it may
// mean the data never reached the disk.
func exportFile(path string, table render.TableModel) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := writeAndClose(file, table); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func writeAndClose(w io.WriteCloser, table render.TableModel) error {
	if err := render.WriteHTML(w, table); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
