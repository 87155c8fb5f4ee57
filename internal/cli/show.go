package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/bjaus/attackcsv"
)

func newShowCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Render one object by ATT&CK ID or STIX id",
		Example: `  attack-csv show T1548.001
  attack-csv show attack-pattern--6831414d-bb70-42b7-8030-d4e06b2e1fd4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			b, err := a.source().Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := b.Validate(); err != nil {
				return err
			}
			r, ok := b.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", ErrNotFound, args[0])
			}
			return writeObject(cmd.OutOrStdout(), r, style)
		},
	}
	cmd.Flags().StringVar(&style, "style", "auto", "glamour style: auto, dark, light, dracula, notty, ascii")
	return cmd
}

// objectMarkdown lays out an object's name, ids and description.
func objectMarkdown(r attackcsv.Record) string {
	var sb strings.Builder
	name := r.Text("name")
	if name == "" {
		name = r.Text("id")
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)

	var meta []string
	if id, ok := r.AttackID(); ok && id != "" {
		meta = append(meta, "**ATT&CK ID:** "+id)
	}
	meta = append(meta, "**Type:** "+r.Text("type"), "**STIX ID:** "+r.Text("id"))
	fmt.Fprintf(&sb, "> %s\n", strings.Join(meta, " | "))
	if m := r.Text("modified"); m != "" {
		fmt.Fprintf(&sb, ">\n> **Modified:** %s\n", m)
	}

	if desc := r.Text(attackcsv.DescriptionColumn); desc != "" {
		sb.WriteString("\n---\n\n")
		sb.WriteString(strings.TrimSpace(attackcsv.Rewrite(desc, attackcsv.ModePlain)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeObject(w io.Writer, r attackcsv.Record, style string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := renderer.Render(objectMarkdown(r))
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
