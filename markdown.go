package attackcsv

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

var markdownEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func writeMarkdown(w io.Writer, s Sheet) error {
	header := escapeMarkdown(s.Header)
	numCols := len(header)

	var rows [][]string
	for row := range s.Rows() {
		rows = append(rows, escapeMarkdown(row.Values()))
	}

	// Column widths, minimum 3 for the separator dashes.
	widths := make([]int, numCols)
	for i, col := range header {
		widths[i] = max(3, runewidth.StringWidth(col))
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	if err := writeMarkdownRow(w, header, widths); err != nil {
		return err
	}
	sep := make([]string, numCols)
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdown(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = markdownEscaper.Replace(c)
	}
	return out
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		padded[i] = alignCell(cells[i], width, alignLeft)
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
