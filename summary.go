package attackcsv

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// BorderStyle controls summary table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

var borderNames = map[string]BorderStyle{
	"rounded": BorderRounded,
	"none":    BorderNone,
	"ascii":   BorderASCII,
	"heavy":   BorderHeavy,
	"double":  BorderDouble,
}

// ParseBorder parses a border style name.
func ParseBorder(s string) (BorderStyle, error) {
	if b, ok := borderNames[strings.ToLower(s)]; ok {
		return b, nil
	}
	return BorderRounded, fmt.Errorf("%w: %q", ErrInvalidBorder, s)
}

// alignment controls summary cell alignment.
type alignment int

const (
	alignLeft alignment = iota
	alignCenter
	alignRight
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// Summary renders one line per sheet: type, row count and column count,
// with a totals footer.
type Summary struct {
	Title  string
	Border BorderStyle
	Sheets []Sheet
}

var summaryAligns = []alignment{alignLeft, alignRight, alignRight}

// Write renders the summary table to w.
func (s Summary) Write(w io.Writer) error {
	header := []string{"TYPE", "ROWS", "COLUMNS"}
	rows := make([][]string, len(s.Sheets))
	total := 0
	for i, sh := range s.Sheets {
		rows[i] = []string{sh.Type, strconv.Itoa(sh.Len()), strconv.Itoa(len(sh.Header))}
		total += sh.Len()
	}
	footer := []string{"total", strconv.Itoa(total), ""}
	widths := computeWidths(header, rows, footer)

	if s.Border == BorderNone {
		return renderPlainTable(w, header, rows, footer, widths)
	}
	return renderBorderedTable(w, s.Title, header, rows, footer, widths, s.Border)
}

func computeWidths(header []string, rows [][]string, footer []string) []int {
	widths := make([]int, len(header))
	for _, line := range append(append([][]string{header}, rows...), footer) {
		for i, cell := range line {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// renderPlainTable lays the summary out with dashed rules and no frame.
func renderPlainTable(w io.Writer, header []string, rows [][]string, footer []string, widths []int) error {
	if err := writePlainRow(w, header, widths); err != nil {
		return err
	}
	if err := writePlainSep(w, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writePlainRow(w, row, widths); err != nil {
			return err
		}
	}
	if err := writePlainSep(w, widths); err != nil {
		return err
	}
	return writePlainRow(w, footer, widths)
}

func writePlainSep(w io.Writer, widths []int) error {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

func writePlainRow(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = alignCell(cells[i], width, summaryAligns[i])
	}
	line := strings.TrimRight(strings.Join(parts, "  "), " ")
	_, err := fmt.Fprintln(w, line)
	return err
}

func renderBorderedTable(w io.Writer, title string, header []string, rows [][]string, footer []string, widths []int, style BorderStyle) error {
	bc, ok := borderSets[style]
	if !ok {
		bc = borderSets[BorderRounded]
	}

	if title != "" {
		// Widen the last column if the title does not fit.
		if need := runewidth.StringWidth(title) + 2 - tableInnerWidth(widths); need > 0 {
			widths[len(widths)-1] += need
		}
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := tableInnerWidth(widths) - 2
		if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, alignCell(title, inner, alignCenter), bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else {
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
			return err
		}
	}

	if err := drawBorderedRow(w, header, widths, bc.vertical); err != nil {
		return err
	}
	if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}
	for _, row := range rows {
		if err := drawBorderedRow(w, row, widths, bc.vertical); err != nil {
			return err
		}
	}
	if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}
	if err := drawBorderedRow(w, footer, widths, bc.vertical); err != nil {
		return err
	}
	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// tableInnerWidth is the width between the outer frame: padded cells plus
// the separators between them.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, widths []int, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(alignCell(cells[i], width, summaryAligns[i]))
		sb.WriteString(" ")
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func alignCell(s string, width int, align alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case alignRight:
		return strings.Repeat(" ", pad) + s
	case alignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
