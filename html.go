package attackcsv

import (
	"fmt"
	"html"
	"io"
)

// writeHTML renders the sheet as a table. When the sheet was projected in
// ModeHTML the description column already holds markup and is written
// as-is. Rows with an ATT&CK ID get it as their element id, which is the
// anchor rewritten technique links point at.
func writeHTML(w io.Writer, s Sheet) error {
	raw := -1
	if s.Options.Mode == ModeHTML {
		raw = s.Header.Index(DescriptionColumn)
	}
	anchor := s.Header.Index(AttackIDColumn)

	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  <caption>%s</caption>\n", html.EscapeString(s.Type)); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <thead>\n    <tr>"); err != nil {
		return err
	}
	for _, col := range s.Header {
		if _, err := fmt.Fprintf(w, "      <th>%s</th>\n", html.EscapeString(col)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "    </tr>\n  </thead>"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for row := range s.Rows() {
		values := row.Values()
		open := "    <tr>"
		if anchor >= 0 && values[anchor] != "" {
			open = fmt.Sprintf(`    <tr id="%s">`, html.EscapeString(values[anchor]))
		}
		if _, err := fmt.Fprintln(w, open); err != nil {
			return err
		}
		for i, cell := range values {
			if i != raw {
				cell = html.EscapeString(cell)
			}
			if _, err := fmt.Fprintf(w, "      <td>%s</td>\n", cell); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "</table>")
	return err
}
