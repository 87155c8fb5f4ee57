package attackcsv

import (
	"encoding/json"
	"io"
)

func writeJSONL(w io.Writer, s Sheet) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for row := range s.Rows() {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
