package attackcsv

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"
)

// writeCSV writes the header and every row with all fields quoted and CRLF
// record terminators. encoding/csv only quotes when needed, so the quoting
// is done here.
func writeCSV(w io.Writer, s Sheet) error {
	bw := bufio.NewWriter(w)
	if err := writeCSVRow(bw, s.Header); err != nil {
		return err
	}
	for row := range s.Rows() {
		if err := writeCSVRow(bw, row.Values()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeCSVRow(bw *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := bw.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	_, err := bw.WriteString("\r\n")
	return err
}

func writeTSV(w io.Writer, s Sheet) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(s.Header); err != nil {
		return err
	}
	for row := range s.Rows() {
		if err := cw.Write(row.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
