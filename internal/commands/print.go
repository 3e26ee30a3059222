package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/five82/contactdesk/internal/desk"
	"github.com/five82/contactdesk/internal/render"
)

var (
	bold      = color.New(color.Bold).SprintFunc()
	blackTag  = color.New(color.FgRed, color.Bold).SprintFunc()
	groupTag  = color.New(color.FgCyan).SprintFunc()
	okText    = color.New(color.FgGreen).SprintFunc()
	faintText = color.New(color.Faint).SprintFunc()
)

// printContacts writes rows as an aligned table.
func printContacts(w io.Writer, model render.TableModel) {
	if model.Empty {
		_, _ = fmt.Fprintln(w, faintText("No contacts"))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold("ID"), bold("NAME"), bold("PHONE"), bold("EMAIL"), bold("GROUP"), bold("FLAGS"))
	for _, r := range model.Rows {
		group := ""
		if r.Group != "" {
			group = groupTag(r.Group)
		}
		flags := ""
		if r.Black != "" {
			flags = blackTag(r.Black)
		}
		tbl.AddRow(r.ID, r.Name, r.Phone, r.Email, group, flags)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// printNotifier prints successful operations. Failures surface as the
// command's error instead.
func printNotifier(w io.Writer) desk.Notifier {
	return desk.NotifyFunc(func(message string, ok bool) {
		if ok {
			_, _ = fmt.Fprintln(w, okText(message))
		}
	})
}

func alwaysYes(context.Context, string) (bool, error) {
	return true, nil
}

// promptConfirmer asks on out and reads a y/N answer from in.
func promptConfirmer(in io.Reader, out io.Writer) desk.Confirmer {
	reader := bufio.NewReader(in)
	return desk.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		_, _ = fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, fmt.Errorf("read answer: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	})
}
