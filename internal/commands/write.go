package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/contactdesk/internal/contacts"
	"github.com/five82/contactdesk/internal/desk"
	"github.com/five82/contactdesk/internal/form"
	"github.com/five82/contactdesk/internal/render"
)

// fieldOptions are the contact form fields as flags.
type fieldOptions struct {
	form.Fields
}

func addFieldFlags(cmd *cobra.Command, f *fieldOptions) {
	flags := cmd.Flags()
	flags.StringVar(&f.Name, "name", "", "display name (required)")
	flags.StringVar(&f.Phone, "phone", "", "phone number; spaces, dashes, and parentheses are stripped")
	flags.StringVar(&f.Email, "email", "", "email address")
	flags.StringVar(&f.Group, "group", "", "group name, at most 50 characters")
	flags.StringVar(&f.Note, "note", "", "free-form note (Markdown)")
	flags.BoolVar(&f.Blacklisted, "blacklisted", false, "mark the contact as blacklisted")
}

// overlay copies the flags the user set onto base.
func (f *fieldOptions) overlay(cmd *cobra.Command, base form.Fields) form.Fields {
	flags := cmd.Flags()
	if flags.Changed("name") {
		base.Name = f.Name
	}
	if flags.Changed("phone") {
		base.Phone = f.Phone
	}
	if flags.Changed("email") {
		base.Email = f.Email
	}
	if flags.Changed("group") {
		base.Group = f.Group
	}
	if flags.Changed("note") {
		base.Note = f.Note
	}
	if flags.Changed("blacklisted") {
		base.Blacklisted = f.Blacklisted
	}
	return base
}

// validationError rewrites a form error so the offending flag is named.
func validationError(err error) error {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("--%s: %s", verr.Field, verr.Message)
	}
	return err
}

func addAdd(topLevel *cobra.Command, o *rootOptions) {
	f := &fieldOptions{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a contact",
		Example: `
contactdesk add --name "Alice" --phone "+1 (415) 555-1234" --group Work
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			s := form.New()
			s.Fields = f.Fields
			if _, err := sess.Desk.Submit(cmd.Context(), s); err != nil {
				return validationError(err)
			}
			return nil
		},
	}
	addFieldFlags(cmd, f)
	topLevel.AddCommand(cmd)
}

func addUpdate(topLevel *cobra.Command, o *rootOptions) {
	f := &fieldOptions{}
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a contact's fields",
		Long: `update loads the contact, applies the flags that were given, and sends
the full record back. Fields without a flag keep their current value.`,
		Example: `
contactdesk update 42 --email alice@example.com
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			ctx := cmd.Context()
			if err := sess.Desk.RefreshContacts(ctx); err != nil {
				return err
			}
			res, err := sess.Desk.Dispatch(ctx, desk.RowAction{ID: contacts.ID(args[0]), Action: render.ActionEdit})
			if err != nil {
				return err
			}

			s := *res.Form
			s.Fields = f.overlay(cmd, s.Fields)
			if _, err := sess.Desk.Submit(ctx, s); err != nil {
				return validationError(err)
			}
			return nil
		},
	}
	addFieldFlags(cmd, f)
	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command, o *rootOptions) {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a contact after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmer := promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				confirmer = desk.ConfirmFunc(alwaysYes)
			}
			sess, err := o.open(cmd, desk.WithConfirmer(confirmer))
			if err != nil {
				return err
			}
			defer sess.Close()

			res, err := sess.Desk.Dispatch(cmd.Context(), desk.RowAction{ID: contacts.ID(args[0]), Action: render.ActionDelete})
			if err != nil {
				return err
			}
			if !res.Performed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	topLevel.AddCommand(cmd)
}

func addBlacklist(topLevel *cobra.Command, o *rootOptions) {
	var off, toggle bool
	cmd := &cobra.Command{
		Use:   "blacklist ID",
		Short: "Blacklist or unblacklist a contact",
		Example: `
contactdesk blacklist 42
contactdesk blacklist 42 --off
contactdesk blacklist 42 --toggle
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			id := contacts.ID(args[0])
			if toggle {
				_, err := sess.Desk.ToggleBlacklist(cmd.Context(), id)
				return err
			}
			action := render.ActionBlack
			if off {
				action = render.ActionUnblack
			}
			_, err = sess.Desk.Dispatch(cmd.Context(), desk.RowAction{ID: id, Action: action})
			return err
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "remove the contact from the blacklist")
	cmd.Flags().BoolVar(&toggle, "toggle", false, "let the server flip the current value")
	cmd.MarkFlagsMutuallyExclusive("off", "toggle")
	topLevel.AddCommand(cmd)
}
