package attackcsv

import (
	"fmt"
	"io"
	"text/template"
)

func writeGoTemplate(w io.Writer, tmplStr string, s Sheet) error {
	tmpl, err := template.New(s.Type).Option("missingkey=zero").Parse(tmplStr)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	for row := range s.Rows() {
		if err := tmpl.Execute(w, row.Map()); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
