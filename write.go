package attackcsv

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Write renders sheet s in format f to w.
//
// CSV, TSV, JSONL and go-template formats stream rows as they are
// projected. JSON, YAML, Markdown and HTML collect the rows first.
func Write(w io.Writer, f Format, s Sheet) error {
	switch f {
	case CSV:
		return writeCSV(w, s)
	case TSV:
		return writeTSV(w, s)
	case JSON:
		return writeJSON(w, s)
	case JSONL:
		return writeJSONL(w, s)
	case YAML:
		return writeYAML(w, s)
	case Markdown:
		return writeMarkdown(w, s)
	case HTML:
		return writeHTML(w, s)
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return writeGoTemplate(w, tmpl, s)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal renders sheet s in format f and returns the bytes.
func Marshal(f Format, s Sheet) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func collectRows(s Sheet) []Row {
	rows := make([]Row, 0, s.Len())
	for row := range s.Rows() {
		rows = append(rows, row)
	}
	return rows
}
